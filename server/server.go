package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"heattreat/calculator"
	"heattreat/config"
	"heattreat/furnace"
	"heattreat/model"
)

type Server struct {
	addr     string
	upgrader websocket.Upgrader
	planner  Planner
	furnace  config.FurnaceCfg
	limiter  *IPRateLimiter
	// 炉子编号
	furnaces int32
}

func NewServer(cfg *config.Config, planner Planner, upgrader websocket.Upgrader) *Server {
	return &Server{
		addr:     cfg.Server.Addr,
		upgrader: upgrader,
		planner:  planner,
		furnace:  cfg.Furnace,
		limiter:  NewIPRateLimiter(cfg.Server.RateLimit, cfg.Server.RateBurst),
	}
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/ws", s.serveWs).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.limiter.LimitMiddleware)
	api.HandleFunc("/plan", s.handlePlan).Methods(http.MethodPost)
	api.HandleFunc("/material", s.handleMaterial).Methods(http.MethodGet)
	return r
}

// serveWs handles websocket requests from the peer.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("websocket 升级失败")
		return
	}
	defer conn.Close()

	number := int(atomic.AddInt32(&s.furnaces, 1))
	hub := NewHub(s.planner, furnace.NewFurnace(number), s.furnace)
	hub.conn = conn
	defer hub.close()
	log.WithFields(log.Fields{"session": hub.id, "furnace": number, "remote": r.RemoteAddr}).Info("连接建立")

	go hub.handleRequest()
	go hub.handleResponse()
	for {
		var msg model.Msg
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithField("session", hub.id).WithError(err).Warn("连接异常断开")
			}
			log.WithField("session", hub.id).Info("连接关闭")
			return
		}
		select {
		case hub.msg <- msg:
		case <-hub.done:
			return
		}
	}
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	var req model.PlanReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResp{Code: model.CodeBadRequest, Message: "invalid request body: " + err.Error()})
		return
	}
	plan, err := s.planner.Plan(req.G0, req.Sigma)
	if err != nil {
		if de, ok := calculator.AsDomainError(err); ok {
			writeJSON(w, http.StatusUnprocessableEntity, model.ErrorResp{Code: string(de.Code), Message: de.Message})
			return
		}
		log.WithError(err).Error("计算失败")
		writeJSON(w, http.StatusInternalServerError, model.ErrorResp{Code: model.CodeInternal, Message: "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, newPlanResp(plan, s.planner.Material().Parameter))
}

func (s *Server) handleMaterial(w http.ResponseWriter, r *http.Request) {
	steel := s.planner.Material()
	writeJSON(w, http.StatusOK, model.MaterialResp{
		Number:               steel.Number,
		Name:                 steel.Name,
		FrictionStress:       steel.Parameter.FrictionStress,
		HallPetchCoefficient: steel.Parameter.HallPetchCoefficient,
		GrowthExponent:       steel.Parameter.GrowthExponent,
		GrowthRateConstant:   steel.Parameter.GrowthRateConstant,
		AnnealingTemperature: steel.Parameter.AnnealingTemperature,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("写回复失败")
	}
}

// Serve 阻塞直到 ctx 结束或监听失败
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Router(),
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	log.WithField("addr", s.addr).Info("服务启动")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("服务关闭")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
