package discovery

import "testnetdir.app/pulse/internal/model"

// DefaultFallbackCandidates returns the pre-vetted candidate list used when
// every provider comes back empty, so the pipeline is never starved during a
// cold start or a total provider outage. Fallback candidates bypass the
// relevance filter. Returns a fresh slice each call.
func DefaultFallbackCandidates() []model.DiscoveryCandidate {
	return []model.DiscoveryCandidate{
		{
			Name:        "Fuel Ignition",
			Description: "Modular execution layer running an incentivized testnet with a points program for early participants.",
			Network:     "Fuel",
			Website:     "https://fuel.network",
			SourceURL:   "https://fuel.network",
		},
		{
			Name:        "Scroll Sepolia",
			Description: "zkEVM rollup testnet on Sepolia for deploying and testing zero-knowledge scaling contracts.",
			Network:     "zkSync-compatible zkEVM",
			Website:     "https://scroll.io",
			SourceURL:   "https://scroll.io",
		},
		{
			Name:        "Berachain bArtio",
			Description: "Proof-of-liquidity appchain devnet built on the Cosmos SDK, open for public beta testing.",
			Network:     "Berachain",
			Website:     "https://berachain.com",
			SourceURL:   "https://berachain.com",
		},
		{
			Name:        "Monad Devnet",
			Description: "Parallel EVM devnet focused on high-throughput execution, currently in closed beta.",
			Network:     "Monad",
			Website:     "https://monad.xyz",
			SourceURL:   "https://monad.xyz",
		},
	}
}
