package furnace

import (
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"heattreat/calculator"
)

// 炉子状态: Idle -> Loaded -> Heating -> Complete -> Idle
type State int

const (
	Idle State = iota
	Loaded
	Heating
	Complete
)

var stateNames = [...]string{"idle", "loaded", "heating", "complete"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

var (
	ErrInvalidTransition = errors.New("invalid furnace transition")
	ErrNegativeTime      = errors.New("plan has a negative annealing time")
)

// Furnace 只记录展示层流程，计算由 calculator 完成后再装炉
type Furnace struct {
	Number int
	Name   string

	mu       sync.Mutex
	state    State
	progress int // 0 ~ 100
	plan     *calculator.Plan
}

type Status struct {
	Number   int
	State    State
	Progress int
	Plan     *calculator.Plan
}

func NewFurnace(number int) *Furnace {
	return &Furnace{
		Number: number,
		Name:   fmt.Sprintf("炉子%d", number),
		state:  Idle,
	}
}

func (f *Furnace) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Furnace) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	status := Status{
		Number:   f.Number,
		State:    f.state,
		Progress: f.progress,
	}
	if f.plan != nil {
		plan := *f.plan
		status.Plan = &plan
	}
	return status
}

// 装炉
func (f *Furnace) Load(plan calculator.Plan) error {
	if plan.AnnealingTime < 0 {
		return fmt.Errorf("load %s: %w", f.Name, ErrNegativeTime)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.transition(Idle, Loaded); err != nil {
		return err
	}
	f.plan = &plan
	f.progress = 0
	log.WithFields(log.Fields{
		"furnace":            f.Number,
		"final_grain_size":   plan.FinalGrainSize,
		"annealing_time":     plan.AnnealingTime,
		"initial_grain_size": plan.InitialGrainSize,
	}).Info("装炉")
	return nil
}

// 开始加热
func (f *Furnace) Start() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.transition(Loaded, Heating)
}

// Advance 更新加热进度，到 100 时进入 Complete
func (f *Furnace) Advance(percent int) (State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != Heating {
		return f.state, fmt.Errorf("%w: advance in state %s", ErrInvalidTransition, f.state)
	}
	if percent > 100 {
		percent = 100
	}
	if percent > f.progress {
		f.progress = percent
	}
	if f.progress == 100 {
		if err := f.transition(Heating, Complete); err != nil {
			return f.state, err
		}
	}
	return f.state, nil
}

// 出炉
func (f *Furnace) Unload() (calculator.Plan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.transition(Complete, Idle); err != nil {
		return calculator.Plan{}, err
	}
	plan := *f.plan
	f.plan = nil
	f.progress = 0
	return plan, nil
}

// 调用方需持有 f.mu
func (f *Furnace) transition(from, to State) error {
	if f.state != from {
		return fmt.Errorf("%w: %s -> %s (current %s)", ErrInvalidTransition, from, to, f.state)
	}
	f.state = to
	log.WithFields(log.Fields{
		"furnace": f.Number,
		"from":    from.String(),
		"to":      to.String(),
	}).Info("炉子状态变化")
	return nil
}
