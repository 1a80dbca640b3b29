package api

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"supply-demand/internal/api/models"
	"supply-demand/internal/config"
	"supply-demand/internal/logger"
	"supply-demand/internal/model"
	"supply-demand/internal/scenario"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"
	"github.com/sirupsen/logrus"
)

func newTestRouter(t *testing.T, cfg *config.Config) (*gin.Engine, *gbytes.Buffer) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if cfg == nil {
		cfg = config.Default()
	}
	buf := gbytes.NewBuffer()
	log := logger.Logger()
	log.SetOutput(buf)
	log.SetLevel(logrus.DebugLevel)
	log.SetFormatter(&logrus.JSONFormatter{})
	r, closeRouter := NewRouter(cfg, log)
	t.Cleanup(closeRouter)
	return r, buf
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var rd *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	g := NewGomegaWithT(t)
	r, _ := newTestRouter(t, nil)

	w := doJSON(r, http.MethodGet, "/health", nil)
	g.Expect(w.Code).To(Equal(http.StatusOK))
	g.Expect(w.Body.String()).To(ContainSubstring(`"ok"`))
}

func TestEvaluateTaxScenario(t *testing.T) {
	g := NewGomegaWithT(t)
	r, buf := newTestRouter(t, nil)

	w := doJSON(r, http.MethodPost, "/api/v1/evaluate", models.EvaluateRequest{Scenario: "tax", Mode: "pro"})
	g.Expect(w.Code).To(Equal(http.StatusOK))

	var resp models.EvaluateResponse
	g.Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
	g.Expect(resp.ID).NotTo(BeEmpty())
	g.Expect(resp.Scenario).To(Equal("tax"))
	g.Expect(resp.ShowPolicyEquilibrium).To(BeTrue())

	base, ok := resp.Frame.Base.Get()
	g.Expect(ok).To(BeTrue())
	g.Expect(base.Qe).To(BeNumerically("~", 8, 1e-9))
	g.Expect(base.Pe).To(BeNumerically("~", 14, 1e-9))

	pol, ok := resp.Frame.Policy.Get()
	g.Expect(ok).To(BeTrue())
	g.Expect(pol.Qe).To(BeNumerically("~", 4.5, 1e-9))
	g.Expect(pol.Pe).To(BeNumerically("~", 17.5, 1e-9))

	wedge, ok := resp.Frame.Wedge.Get()
	g.Expect(ok).To(BeTrue())
	g.Expect(wedge.SellerPrice).To(BeNumerically("~", 10.5, 1e-9))

	inc, ok := resp.Incidence.Get()
	g.Expect(ok).To(BeTrue())
	g.Expect(inc.BuyerShare).To(BeNumerically("~", 0.5, 1e-9))

	g.Expect(resp.Report).NotTo(BeEmpty())
	g.Expect(resp.Annotations).To(ContainElement(HavePrefix("New equilibrium")))

	g.Expect(buf).To(gbytes.Say(`"operation":"evaluate"`))
}

func TestEvaluateExplicitInputsWithoutEquilibrium(t *testing.T) {
	g := NewGomegaWithT(t)
	r, _ := newTestRouter(t, nil)

	cfg := config.Default()
	in := cfg.ToModelInputs()
	in.Demand.Intercept = 5
	in.Supply.Intercept = 10
	in.Ceiling.Enabled = true

	w := doJSON(r, http.MethodPost, "/api/v1/evaluate", models.EvaluateRequest{Inputs: &in})
	g.Expect(w.Code).To(Equal(http.StatusOK))
	g.Expect(w.Body.String()).To(ContainSubstring(`"base_equilibrium":null`))
	g.Expect(w.Body.String()).To(ContainSubstring(`"ceiling":null`))
	g.Expect(w.Body.String()).To(ContainSubstring(`"incidence":null`))
}

func TestEvaluateErrors(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	cases := []struct {
		name   string
		req    models.EvaluateRequest
		status int
		code   string
	}{
		{"unknown scenario", models.EvaluateRequest{Scenario: "nope"}, http.StatusNotFound, "UNKNOWN_SCENARIO"},
		{"bad mode", models.EvaluateRequest{Mode: "expert"}, http.StatusBadRequest, "INVALID_MODE"},
		{"bad reference", models.EvaluateRequest{Reference: "market"}, http.StatusBadRequest, "INVALID_REFERENCE"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := NewGomegaWithT(t)
			w := doJSON(r, http.MethodPost, "/api/v1/evaluate", tc.req)
			g.Expect(w.Code).To(Equal(tc.status))

			var resp models.ErrorResponse
			g.Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			g.Expect(resp.Error.Code).To(Equal(tc.code))
		})
	}
}

func TestEvaluateMalformedBody(t *testing.T) {
	g := NewGomegaWithT(t)
	r, _ := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/evaluate", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	g.Expect(w.Code).To(Equal(http.StatusBadRequest))
	g.Expect(w.Body.String()).To(ContainSubstring("INVALID_REQUEST"))
}

func TestScenarios(t *testing.T) {
	g := NewGomegaWithT(t)
	r, _ := newTestRouter(t, nil)

	w := doJSON(r, http.MethodGet, "/api/v1/scenarios", nil)
	g.Expect(w.Code).To(Equal(http.StatusOK))
	var list struct {
		Scenarios []models.ScenarioInfo `json:"scenarios"`
	}
	g.Expect(json.Unmarshal(w.Body.Bytes(), &list)).To(Succeed())
	g.Expect(list.Scenarios).To(HaveLen(8))
	g.Expect(list.Scenarios[0].Name).To(Equal("custom"))

	w = doJSON(r, http.MethodGet, "/api/v1/scenarios/ceiling", nil)
	g.Expect(w.Code).To(Equal(http.StatusOK))
	var detail models.ScenarioDetail
	g.Expect(json.Unmarshal(w.Body.Bytes(), &detail)).To(Succeed())
	pc, ok := detail.Frame.Ceiling.Get()
	g.Expect(ok).To(BeTrue())
	g.Expect(pc.QuantityDemanded).To(BeNumerically("~", 12, 1e-9))
	g.Expect(pc.QuantitySupplied).To(BeNumerically("~", 4, 1e-9))
	g.Expect(pc.Gap).To(BeNumerically("~", 8, 1e-9))

	w = doJSON(r, http.MethodGet, "/api/v1/scenarios/unknown", nil)
	g.Expect(w.Code).To(Equal(http.StatusNotFound))
}

func TestParameters(t *testing.T) {
	g := NewGomegaWithT(t)
	r, _ := newTestRouter(t, nil)

	w := doJSON(r, http.MethodGet, "/api/v1/parameters", nil)
	g.Expect(w.Code).To(Equal(http.StatusOK))
	var out struct {
		Parameters []models.ParameterInfo `json:"parameters"`
	}
	g.Expect(json.Unmarshal(w.Body.Bytes(), &out)).To(Succeed())
	g.Expect(out.Parameters).To(HaveLen(10))
}

func TestSweep(t *testing.T) {
	g := NewGomegaWithT(t)
	r, _ := newTestRouter(t, nil)

	w := doJSON(r, http.MethodPost, "/api/v1/sweep", models.SweepRequest{
		Scenario: "baseline",
		Param:    "tax",
		From:     0,
		To:       4,
		Step:     1,
	})
	g.Expect(w.Code).To(Equal(http.StatusOK))
	var resp models.SweepResponse
	g.Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
	g.Expect(resp.Points).To(HaveLen(5))

	last, ok := resp.Points[4].Frame.Policy.Get()
	g.Expect(ok).To(BeTrue())
	g.Expect(last.Qe).To(BeNumerically("~", 6, 1e-9))

	w = doJSON(r, http.MethodPost, "/api/v1/sweep", models.SweepRequest{Param: "gravity", To: 1, Step: 1})
	g.Expect(w.Code).To(Equal(http.StatusBadRequest))
	g.Expect(w.Body.String()).To(ContainSubstring("INVALID_SWEEP"))

	w = doJSON(r, http.MethodPost, "/api/v1/sweep", models.SweepRequest{Param: "tax", From: 5, To: 1, Step: 1})
	g.Expect(w.Code).To(Equal(http.StatusBadRequest))
	g.Expect(w.Body.String()).To(ContainSubstring("INVALID_SWEEP"))
}

func TestRateLimit(t *testing.T) {
	g := NewGomegaWithT(t)
	cfg := config.Default()
	cfg.Server.RateLimit = 0.001
	cfg.Server.Burst = 2
	r, _ := newTestRouter(t, cfg)

	g.Expect(doJSON(r, http.MethodGet, "/health", nil).Code).To(Equal(http.StatusOK))
	g.Expect(doJSON(r, http.MethodGet, "/health", nil).Code).To(Equal(http.StatusOK))
	w := doJSON(r, http.MethodGet, "/health", nil)
	g.Expect(w.Code).To(Equal(http.StatusTooManyRequests))
	g.Expect(w.Body.String()).To(ContainSubstring("RATE_LIMITED"))
}

func TestCORSPreflight(t *testing.T) {
	g := NewGomegaWithT(t)
	r, _ := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/evaluate", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	g.Expect(w.Code).To(Equal(http.StatusNoContent))
	g.Expect(w.Header().Get("Access-Control-Allow-Origin")).To(Equal("*"))
}

func TestStream(t *testing.T) {
	g := NewGomegaWithT(t)
	r, buf := newTestRouter(t, nil)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/stream?scenario=tax&fps=60&frames=3"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	g.Expect(err).NotTo(HaveOccurred())
	defer conn.Close()

	var frames []models.StreamFrame
	for i := 0; i < 3; i++ {
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var f models.StreamFrame
		g.Expect(conn.ReadJSON(&f)).To(Succeed())
		frames = append(frames, f)
	}
	g.Expect(frames[0].StreamID).NotTo(BeEmpty())
	g.Expect(frames[1].StreamID).To(Equal(frames[0].StreamID))
	g.Expect(frames[2].Index).To(Equal(2))
	g.Expect(frames[2].Phase).To(BeNumerically("~", 0.04, 1e-9))
	g.Expect(frames[0].Frame.Inputs.Animate).To(BeTrue())

	_, _, err = conn.ReadMessage()
	g.Expect(websocket.IsCloseError(err, websocket.CloseNormalClosure)).To(BeTrue())

	g.Eventually(buf, time.Second).Should(gbytes.Say("stream finished"))
}

func TestStreamUnknownScenario(t *testing.T) {
	g := NewGomegaWithT(t)
	r, _ := newTestRouter(t, nil)

	w := doJSON(r, http.MethodGet, "/api/v1/stream?scenario=nope", nil)
	g.Expect(w.Code).To(Equal(http.StatusNotFound))
}

func TestSweepCache(t *testing.T) {
	t.Setenv("SWEEP_CACHE", "true")
	g := NewGomegaWithT(t)
	r, _ := newTestRouter(t, nil)

	req := models.SweepRequest{Scenario: "ceiling", Param: "ceiling", From: 8, To: 14, Step: 2}
	first := doJSON(r, http.MethodPost, "/api/v1/sweep", req)
	g.Expect(first.Code).To(Equal(http.StatusOK))
	g.Expect(first.Header().Get("X-Cache")).To(BeEmpty())

	second := doJSON(r, http.MethodPost, "/api/v1/sweep", req)
	g.Expect(second.Code).To(Equal(http.StatusOK))
	g.Expect(second.Header().Get("X-Cache")).To(Equal("HIT"))

	var a, b models.SweepResponse
	g.Expect(json.Unmarshal(first.Body.Bytes(), &a)).To(Succeed())
	g.Expect(json.Unmarshal(second.Body.Bytes(), &b)).To(Succeed())
	g.Expect(b.ID).NotTo(Equal(a.ID))
	g.Expect(b.Points).To(HaveLen(len(a.Points)))
}

func TestRouterCloseReleasesSweepCache(t *testing.T) {
	t.Setenv("SWEEP_CACHE", "true")
	g := NewGomegaWithT(t)
	gin.SetMode(gin.TestMode)

	r, closeRouter := NewRouter(config.Default(), logger.Logger())
	w := doJSON(r, http.MethodPost, "/api/v1/sweep", models.SweepRequest{Param: "tax", To: 2, Step: 1})
	g.Expect(w.Code).To(Equal(http.StatusOK))

	done := make(chan struct{})
	go func() {
		closeRouter()
		closeRouter()
		close(done)
	}()
	g.Eventually(done, time.Second).Should(BeClosed())
}

// flatDemandInputs has a zero demand slope, so quantities at a binding
// ceiling are infinite.
func flatDemandInputs() *model.MarketInputs {
	in := scenario.Defaults()
	in.Demand = model.CurveInputs{Intercept: 18, Slope: 0}
	in.Ceiling = model.PriceLevel{Enabled: true, Level: 8}
	return &in
}

func TestEvaluateFlatDemandCeiling(t *testing.T) {
	g := NewGomegaWithT(t)
	r, _ := newTestRouter(t, nil)

	w := doJSON(r, http.MethodPost, "/api/v1/evaluate", models.EvaluateRequest{Inputs: flatDemandInputs()})
	g.Expect(w.Code).To(Equal(http.StatusOK))
	g.Expect(w.Body.String()).To(ContainSubstring(`"quantity_demanded":null`))

	var resp models.EvaluateResponse
	g.Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
	pc, ok := resp.Frame.Ceiling.Get()
	g.Expect(ok).To(BeTrue())
	g.Expect(pc.BindingDirection).To(Equal(model.BindingShortage))
	g.Expect(pc.QuantitySupplied).To(BeNumerically("~", 2, 1e-9))
	g.Expect(resp.Annotations).To(ContainElement(ContainSubstring("shortage ≈ ∞ units")))
}

func TestSweepThroughZeroSlope(t *testing.T) {
	g := NewGomegaWithT(t)
	r, _ := newTestRouter(t, nil)

	in := flatDemandInputs()
	in.Demand.Slope = 1
	w := doJSON(r, http.MethodPost, "/api/v1/sweep", models.SweepRequest{
		Inputs: in,
		Param:  "demand_slope",
		From:   0,
		To:     1,
		Step:   0.5,
	})
	g.Expect(w.Code).To(Equal(http.StatusOK))
	g.Expect(w.Body.Len()).To(BeNumerically(">", 0))

	var resp models.SweepResponse
	g.Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
	g.Expect(resp.Points).To(HaveLen(3))

	flat, ok := resp.Points[0].Frame.Ceiling.Get()
	g.Expect(ok).To(BeTrue())
	g.Expect(math.IsNaN(flat.Gap)).To(BeTrue())

	half, ok := resp.Points[1].Frame.Ceiling.Get()
	g.Expect(ok).To(BeTrue())
	g.Expect(half.QuantityDemanded).To(BeNumerically("~", 20, 1e-9))
	g.Expect(half.Gap).To(BeNumerically("~", 18, 1e-9))
}
