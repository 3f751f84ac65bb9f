package cutscene

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/theater/common"
)

// Scripts define start(api, state) and update(api, state, dt). Globals are
// reset on every run, so anything that must survive between frames goes in
// state.
const tengoDispatch = `
if __phase == "start" {
	start(__api, __state)
} else if __phase == "update" {
	update(__api, __state, __dt)
}
`

// Program is a compiled tengo cutscene.
type Program struct {
	name     string
	compiled *tengo.Compiled
}

// Compile checks a tengo cutscene and prepares it for cloning.
func Compile(name string, src []byte) (*Program, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + tengoDispatch))
	_ = script.Add("__phase", "")
	_ = script.Add("__api", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__dt", 0.0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("cutscene: compile %s: %w", name, err)
	}
	if err := compiled.Run(); err != nil {
		return nil, fmt.Errorf("cutscene: run %s: %w", name, err)
	}
	for _, fn := range []string{"start", "update"} {
		if !compiled.IsDefined(fn) {
			return nil, fmt.Errorf("cutscene: %s does not define %s", name, fn)
		}
	}
	return &Program{name: name, compiled: compiled}, nil
}

func (p *Program) Name() string { return p.name }

// Factory returns a factory producing independent instances of p.
func (p *Program) Factory() Factory {
	return func() (Script, error) {
		return &tengoScript{
			name:     p.name,
			compiled: p.compiled.Clone(),
			state:    &tengo.Map{Value: map[string]tengo.Object{}},
		}, nil
	}
}

type tengoScript struct {
	name     string
	compiled *tengo.Compiled
	state    *tengo.Map
	api      *tengo.ImmutableMap
}

func (s *tengoScript) Start(d *Director) error {
	s.api = buildTengoAPI(d)
	return s.run("start", 0)
}

func (s *tengoScript) Update(_ *Director, dt float64) error {
	return s.run("update", dt)
}

func (s *tengoScript) run(phase string, dt float64) error {
	if err := s.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := s.compiled.Set("__api", s.api); err != nil {
		return err
	}
	if err := s.compiled.Set("__state", s.state); err != nil {
		return err
	}
	if err := s.compiled.Set("__dt", dt); err != nil {
		return err
	}
	if err := s.compiled.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", s.name, phase, err)
	}
	return nil
}

type tengoArgs []tengo.Object

func (a tengoArgs) str(i int, name string) (string, error) {
	if i >= len(a) {
		return "", tengo.ErrWrongNumArguments
	}
	s, ok := a[i].(*tengo.String)
	if !ok {
		return "", tengo.ErrInvalidArgumentType{Name: name, Expected: "string", Found: a[i].TypeName()}
	}
	return s.Value, nil
}

func (a tengoArgs) float(i int, name string) (float64, error) {
	if i >= len(a) {
		return 0, tengo.ErrWrongNumArguments
	}
	switch v := a[i].(type) {
	case *tengo.Int:
		return float64(v.Value), nil
	case *tengo.Float:
		return v.Value, nil
	}
	return 0, tengo.ErrInvalidArgumentType{Name: name, Expected: "int/float", Found: a[i].TypeName()}
}

func (a tengoArgs) int(i int, name string) (int, error) {
	if i >= len(a) {
		return 0, tengo.ErrWrongNumArguments
	}
	v, ok := tengo.ToInt(a[i])
	if !ok {
		return 0, tengo.ErrInvalidArgumentType{Name: name, Expected: "int", Found: a[i].TypeName()}
	}
	return v, nil
}

// optBool returns def when the argument is missing.
func (a tengoArgs) optBool(i int, def bool) bool {
	if i >= len(a) {
		return def
	}
	return !a[i].IsFalsy()
}

func (a tengoArgs) optStr(i int, name, def string) (string, error) {
	if i >= len(a) {
		return def, nil
	}
	return a.str(i, name)
}

func (a tengoArgs) optFloat(i int, name string, def float64) (float64, error) {
	if i >= len(a) {
		return def, nil
	}
	return a.float(i, name)
}

func (a tengoArgs) point(i int) (x, y float64, err error) {
	if x, err = a.float(i, "x"); err != nil {
		return 0, 0, err
	}
	if y, err = a.float(i+1, "y"); err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func tengoFunc(name string, fn func(args tengoArgs) (tengo.Object, error)) *tengo.UserFunction {
	return &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
		ret, err := fn(args)
		if err != nil {
			return nil, err
		}
		if ret == nil {
			ret = tengo.UndefinedValue
		}
		return ret, nil
	}}
}

func tengoBool(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func buildTengoAPI(d *Director) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}
	def := func(name string, fn func(args tengoArgs) (tengo.Object, error)) {
		values[name] = tengoFunc(name, fn)
	}

	def("say", func(a tengoArgs) (tengo.Object, error) {
		msg, err := a.str(0, "msg")
		if err != nil {
			return nil, err
		}
		d.Say(msg)
		return nil, nil
	})

	def("add_question", func(a tengoArgs) (tengo.Object, error) {
		name, err := a.str(0, "name")
		if err != nil {
			return nil, err
		}
		var options []string
		for i := 1; i < len(a); i++ {
			o, err := a.str(i, "option")
			if err != nil {
				return nil, err
			}
			options = append(options, o)
		}
		d.AddQuestion(name, options...)
		return nil, nil
	})

	def("ask", func(a tengoArgs) (tengo.Object, error) {
		msg, err := a.str(0, "msg")
		if err != nil {
			return nil, err
		}
		q, err := a.str(1, "question")
		if err != nil {
			return nil, err
		}
		d.Ask(msg, q)
		return nil, nil
	})

	def("has_response", func(a tengoArgs) (tengo.Object, error) {
		q, err := a.str(0, "question")
		if err != nil {
			return nil, err
		}
		return tengoBool(d.HasResponse(q)), nil
	})

	def("response", func(a tengoArgs) (tengo.Object, error) {
		q, err := a.str(0, "question")
		if err != nil {
			return nil, err
		}
		r, ok := d.Response(q)
		if !ok {
			return nil, nil
		}
		return &tengo.String{Value: r}, nil
	})

	def("flag", func(a tengoArgs) (tengo.Object, error) {
		name, err := a.str(0, "name")
		if err != nil {
			return nil, err
		}
		return tengoBool(d.Flag(name)), nil
	})

	def("set_flag", func(a tengoArgs) (tengo.Object, error) {
		name, err := a.str(0, "name")
		if err != nil {
			return nil, err
		}
		d.SetFlag(name, a.optBool(1, true))
		return nil, nil
	})

	def("busy", func(tengoArgs) (tengo.Object, error) {
		return tengoBool(d.Busy()), nil
	})

	def("wait", func(a tengoArgs) (tengo.Object, error) {
		ms, err := a.float(0, "ms")
		if err != nil {
			return nil, err
		}
		d.Wait(ms)
		return nil, nil
	})

	def("move", func(a tengoArgs) (tengo.Object, error) {
		actor, err := a.str(0, "actor")
		if err != nil {
			return nil, err
		}
		x, y, err := a.point(1)
		if err != nil {
			return nil, err
		}
		speed, err := a.float(3, "ms_per_tile")
		if err != nil {
			return nil, err
		}
		d.Move(actor, x, y, speed)
		return nil, nil
	})

	def("move_for", func(a tengoArgs) (tengo.Object, error) {
		actor, err := a.str(0, "actor")
		if err != nil {
			return nil, err
		}
		x, y, err := a.point(1)
		if err != nil {
			return nil, err
		}
		ms, err := a.float(3, "ms")
		if err != nil {
			return nil, err
		}
		d.MoveFor(actor, x, y, ms, a.optBool(4, false))
		return nil, nil
	})

	def("teleport", func(a tengoArgs) (tengo.Object, error) {
		actor, err := a.str(0, "actor")
		if err != nil {
			return nil, err
		}
		x, y, err := a.point(1)
		if err != nil {
			return nil, err
		}
		mapName, err := a.optStr(3, "map", "")
		if err != nil {
			return nil, err
		}
		d.Teleport(actor, x, y, mapName, a.optBool(4, true))
		return nil, nil
	})

	def("turn", func(a tengoArgs) (tengo.Object, error) {
		actor, err := a.str(0, "actor")
		if err != nil {
			return nil, err
		}
		name, err := a.str(1, "facing")
		if err != nil {
			return nil, err
		}
		f, err := common.ParseFacing(name)
		if err != nil {
			return nil, err
		}
		d.Turn(actor, f)
		return nil, nil
	})

	def("pan_camera", func(a tengoArgs) (tengo.Object, error) {
		x, y, err := a.point(0)
		if err != nil {
			return nil, err
		}
		ms, err := a.float(2, "ms")
		if err != nil {
			return nil, err
		}
		d.PanCamera(x, y, ms)
		return nil, nil
	})

	def("focus_camera", func(a tengoArgs) (tengo.Object, error) {
		actor, err := a.str(0, "actor")
		if err != nil {
			return nil, err
		}
		pan, err := a.optFloat(2, "pan_ms", 0)
		if err != nil {
			return nil, err
		}
		d.FocusCamera(actor, a.optBool(1, false), pan)
		return nil, nil
	})

	def("focus_point", func(a tengoArgs) (tengo.Object, error) {
		x, y, err := a.point(0)
		if err != nil {
			return nil, err
		}
		d.FocusPoint(x, y, a.optBool(2, false))
		return nil, nil
	})

	def("zoom_camera", func(a tengoArgs) (tengo.Object, error) {
		pct, err := a.float(0, "percent")
		if err != nil {
			return nil, err
		}
		ms, err := a.float(1, "ms")
		if err != nil {
			return nil, err
		}
		if pct <= 0 {
			return nil, fmt.Errorf("zoom_camera: percent must be positive, got %v", pct)
		}
		d.ZoomCamera(pct, ms)
		return nil, nil
	})

	def("give_item", func(a tengoArgs) (tengo.Object, error) {
		item, err := a.str(0, "item")
		if err != nil {
			return nil, err
		}
		count, err := a.int(1, "count")
		if err != nil {
			return nil, err
		}
		actor, err := a.optStr(2, "actor", PlayerName)
		if err != nil {
			return nil, err
		}
		d.GiveItem(item, count, actor, a.optBool(3, true))
		return nil, nil
	})

	def("add_entity", func(a tengoArgs) (tengo.Object, error) {
		name, err := a.str(0, "name")
		if err != nil {
			return nil, err
		}
		prefab, err := a.str(1, "prefab")
		if err != nil {
			return nil, err
		}
		x, y, err := a.point(2)
		if err != nil {
			return nil, err
		}
		facing, err := a.optStr(4, "facing", "down")
		if err != nil {
			return nil, err
		}
		f, err := common.ParseFacing(facing)
		if err != nil {
			return nil, err
		}
		d.AddEntity(name, prefab, x, y, f)
		return nil, nil
	})

	def("remove_entity", func(a tengoArgs) (tengo.Object, error) {
		name, err := a.str(0, "name")
		if err != nil {
			return nil, err
		}
		d.RemoveEntity(name)
		return nil, nil
	})

	def("fade", func(tengoArgs) (tengo.Object, error) {
		d.NormalFade(nil)
		return nil, nil
	})

	def("begin_fade", func(tengoArgs) (tengo.Object, error) {
		d.pushFade(d.NormalFade(nil))
		return nil, nil
	})

	def("end_fade", func(tengoArgs) (tengo.Object, error) {
		d.popFade()
		return nil, nil
	})

	def("begin_group", func(tengoArgs) (tengo.Object, error) {
		d.BeginBatch()
		return nil, nil
	})

	def("end_group", func(tengoArgs) (tengo.Object, error) {
		d.EndBatch()
		return nil, nil
	})

	def("finish", func(a tengoArgs) (tengo.Object, error) {
		d.Finish(a.optBool(0, false))
		return nil, nil
	})

	def("log", func(a tengoArgs) (tengo.Object, error) {
		parts := make([]string, 0, len(a))
		for _, o := range a {
			parts = append(parts, objectAsString(o))
		}
		d.logger.Info(strings.Join(parts, " "), "cutscene", d.cutsceneName())
		return nil, nil
	})

	return &tengo.ImmutableMap{Value: values}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
