package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"testnetdir.app/pulse/internal/http/handler"
	"testnetdir.app/pulse/internal/http/router"
	"testnetdir.app/pulse/internal/insights"
	"testnetdir.app/pulse/internal/model"
)

var _ = Describe("InsightsHandler", func() {
	var (
		service  *mockInsightsService
		engine   *gin.Engine
		recorder *httptest.ResponseRecorder
	)

	BeforeEach(func() {
		service = &mockInsightsService{}
		engine = gin.New()
		router.InsightsRouter(engine.Group("/insights"), handler.NewInsightsHandler(service))
		recorder = httptest.NewRecorder()
	})

	Describe("GET /insights/latest", func() {
		It("returns the snapshot with ISO-8601 timestamps", func() {
			top := "ZK"
			service.latestFn = func(_ context.Context) (*model.InsightSnapshot, error) {
				return &model.InsightSnapshot{
					TopCategory: &top,
					ForYou: []model.Recommendation{
						{Slug: "fuel-beta", Name: "Fuel Beta", Reason: "Popular with 2 recent joins"},
					},
					CreatedAt: time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC),
				}, nil
			}

			req := httptest.NewRequest(http.MethodGet, "/insights/latest", nil)
			engine.ServeHTTP(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusOK))

			var body map[string]any
			Expect(json.Unmarshal(recorder.Body.Bytes(), &body)).To(Succeed())
			Expect(body["topCategory"]).To(Equal("ZK"))
			Expect(body["createdAt"]).To(Equal("2026-04-01T12:00:00Z"))
			forYou := body["forYou"].([]any)
			Expect(forYou).To(HaveLen(1))
			Expect(forYou[0].(map[string]any)["reason"]).To(Equal("Popular with 2 recent joins"))
		})

		It("maps catalog unavailability to a 503", func() {
			service.latestFn = func(_ context.Context) (*model.InsightSnapshot, error) {
				return nil, fmt.Errorf("%w: connection refused", insights.ErrCatalogUnavailable)
			}

			req := httptest.NewRequest(http.MethodGet, "/insights/latest", nil)
			engine.ServeHTTP(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusServiceUnavailable))
		})
	})

	Describe("POST /insights/compute", func() {
		It("forces a fresh snapshot", func() {
			computed := false
			service.computeFn = func(_ context.Context) (*model.InsightSnapshot, error) {
				computed = true
				return &model.InsightSnapshot{CreatedAt: time.Now()}, nil
			}

			req := httptest.NewRequest(http.MethodPost, "/insights/compute", nil)
			engine.ServeHTTP(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(computed).To(BeTrue())
		})

		It("maps other failures to a 500", func() {
			service.computeFn = func(_ context.Context) (*model.InsightSnapshot, error) {
				return nil, errors.New("snapshot table missing")
			}

			req := httptest.NewRequest(http.MethodPost, "/insights/compute", nil)
			engine.ServeHTTP(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusInternalServerError))
		})
	})
})
