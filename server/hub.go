package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"heattreat/calculator"
	"heattreat/config"
	"heattreat/furnace"
	"heattreat/model"
	"heattreat/steel_type"
)

// Planner 由 calculator.Calculator 实现
type Planner interface {
	Plan(d0, sigma float64) (calculator.Plan, error)
	Material() *steel_type.Steel
}

// Hub 每个 websocket 连接一个，持有该连接的炉子
type Hub struct {
	id      string
	planner Planner
	furnace *furnace.Furnace
	cfg     config.FurnaceCfg
	conn    *websocket.Conn
	// 最近一次 env 计算出的方案
	plan *calculator.Plan
	// request
	msg chan model.Msg
	// response
	reply chan model.Msg
	done  chan struct{}
}

func NewHub(planner Planner, f *furnace.Furnace, cfg config.FurnaceCfg) *Hub {
	if cfg.ProgressStep <= 0 {
		cfg.ProgressStep = 10
	}
	return &Hub{
		id:      uuid.NewString(),
		planner: planner,
		furnace: f,
		cfg:     cfg,
		msg:     make(chan model.Msg, 10),
		reply:   make(chan model.Msg, 10),
		done:    make(chan struct{}),
	}
}

func (h *Hub) handleRequest() {
	for {
		select {
		case msg := <-h.msg:
			h.handle(msg, h.send)
		case <-h.done:
			return
		}
	}
}

func (h *Hub) handleResponse() {
	for {
		select {
		case reply := <-h.reply:
			if err := h.conn.WriteJSON(&reply); err != nil {
				log.WithFields(log.Fields{"session": h.id, "type": reply.Type}).WithError(err).Warn("回复失败")
			}
		case <-h.done:
			return
		}
	}
}

func (h *Hub) send(reply model.Msg) {
	select {
	case h.reply <- reply:
	case <-h.done:
	}
}

func (h *Hub) close() {
	close(h.done)
}

func (h *Hub) handle(msg model.Msg, emit func(model.Msg)) {
	log.WithFields(log.Fields{"session": h.id, "type": msg.Type}).Debug("收到请求")
	switch msg.Type {
	case model.TypeEnv:
		h.handleEnv(msg, emit)
	case model.TypeLoad:
		if h.plan == nil {
			emit(errorMsg(model.CodeNoPlan, "no valid plan: submit initial grain size and target strength first"))
			return
		}
		if err := h.furnace.Load(*h.plan); err != nil {
			emit(furnaceErrorMsg(err))
			return
		}
		emit(h.statusMsg(model.TypeLoaded))
	case model.TypeStart:
		h.handleStart(emit)
	case model.TypeUnload:
		plan, err := h.furnace.Unload()
		if err != nil {
			emit(furnaceErrorMsg(err))
			return
		}
		emit(newMsg(model.TypeUnloaded, newPlanResp(plan, h.planner.Material().Parameter)))
	case model.TypeStatus:
		emit(h.statusMsg(model.TypeStatus))
	default:
		emit(errorMsg(model.CodeBadRequest, fmt.Sprintf("no such type: %q", msg.Type)))
	}
}

func (h *Hub) handleEnv(msg model.Msg, emit func(model.Msg)) {
	var req model.PlanReq
	if err := json.Unmarshal([]byte(msg.Content), &req); err != nil {
		emit(errorMsg(model.CodeBadRequest, "invalid env content: "+err.Error()))
		return
	}
	plan, err := h.planner.Plan(req.G0, req.Sigma)
	if err != nil {
		h.plan = nil
		emit(planErrorMsg(err))
		return
	}
	h.plan = &plan
	emit(newMsg(model.TypePlanned, newPlanResp(plan, h.planner.Material().Parameter)))
}

// 加热进度只用于展示，tick 为 0 时不等待
func (h *Hub) handleStart(emit func(model.Msg)) {
	if err := h.furnace.Start(); err != nil {
		emit(furnaceErrorMsg(err))
		return
	}
	for p := h.cfg.ProgressStep; ; p += h.cfg.ProgressStep {
		if p > 100 {
			p = 100
		}
		state, err := h.furnace.Advance(p)
		if err != nil {
			emit(furnaceErrorMsg(err))
			return
		}
		emit(h.statusMsg(model.TypeProgress))
		if state == furnace.Complete {
			emit(h.statusMsg(model.TypeCompleted))
			return
		}
		if h.cfg.Tick > 0 {
			select {
			case <-time.After(h.cfg.Tick):
			case <-h.done:
				return
			}
		}
	}
}

func (h *Hub) statusMsg(typ string) model.Msg {
	status := h.furnace.Status()
	resp := model.FurnaceStatus{
		Number:   status.Number,
		State:    status.State.String(),
		Progress: status.Progress,
	}
	if status.Plan != nil {
		resp.Plan = newPlanResp(*status.Plan, h.planner.Material().Parameter)
	}
	return newMsg(typ, resp)
}

func newPlanResp(plan calculator.Plan, p *steel_type.Parameter) *model.PlanResp {
	return &model.PlanResp{
		Material:              plan.Material,
		InitialGrainSize:      plan.InitialGrainSize,
		TargetStrength:        plan.TargetStrength,
		FinalGrainSize:        plan.FinalGrainSize,
		AnnealingTime:         plan.AnnealingTime,
		FinalGrainSizeDisplay: math.Round(plan.FinalGrainSize),
		AnnealingTimeDisplay:  math.Round(plan.AnnealingTime),
		AnnealingTemperature:  p.AnnealingTemperature,
	}
}

func newMsg(typ string, v interface{}) model.Msg {
	data, err := json.Marshal(v)
	if err != nil {
		log.WithField("type", typ).WithError(err).Error("序列化失败")
		return errorMsg(model.CodeInternal, "internal error")
	}
	return model.Msg{Type: typ, Content: string(data)}
}

func errorMsg(code, message string) model.Msg {
	data, _ := json.Marshal(model.ErrorResp{Code: code, Message: message})
	return model.Msg{Type: model.TypeError, Content: string(data)}
}

// 领域错误原样返回给用户
func planErrorMsg(err error) model.Msg {
	if de, ok := calculator.AsDomainError(err); ok {
		return errorMsg(string(de.Code), de.Message)
	}
	return errorMsg(model.CodeInternal, err.Error())
}

func furnaceErrorMsg(err error) model.Msg {
	if errors.Is(err, furnace.ErrNegativeTime) {
		return errorMsg(string(calculator.ErrCodeUnreachableByAnnealing),
			"target strength unreachable by annealing from the given initial grain size")
	}
	if errors.Is(err, furnace.ErrInvalidTransition) {
		return errorMsg(model.CodeInvalidTransition, err.Error())
	}
	return errorMsg(model.CodeInternal, err.Error())
}
