package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/milk9111/theater/cutscene"
	"github.com/milk9111/theater/ecs"
	"github.com/milk9111/theater/ecs/entity"
	"github.com/milk9111/theater/levels"
	"github.com/milk9111/theater/prefabs"
	"github.com/spf13/cobra"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

var errCheckFailed = errors.New("check failed")

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate prefabs, items, cutscenes and levels",
	Long: `Build every entity prefab, compile every cutscene script and load
every level, then cross-check the references between them.

Examples:
  theatertool check`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		report := runChecks()
		report.print(cmd.OutOrStdout())
		if len(report.problems) > 0 {
			return errCheckFailed
		}
		return nil
	},
}

type finding struct {
	where string
	err   error
}

type checkReport struct {
	passed   []string
	problems []finding
	warnings []finding
}

func (r *checkReport) pass(where string) { r.passed = append(r.passed, where) }

func (r *checkReport) fail(where string, err error) {
	r.problems = append(r.problems, finding{where: where, err: err})
}

func (r *checkReport) warn(where string, err error) {
	r.warnings = append(r.warnings, finding{where: where, err: err})
}

func (r *checkReport) print(w io.Writer) {
	for _, p := range r.passed {
		fmt.Fprintf(w, "%s %s\n", okStyle.Render("ok  "), p)
	}
	for _, f := range r.warnings {
		fmt.Fprintf(w, "%s %s: %v\n", warnStyle.Render("warn"), f.where, f.err)
	}
	for _, f := range r.problems {
		fmt.Fprintf(w, "%s %s: %v\n", failStyle.Render("FAIL"), f.where, f.err)
	}
	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("%d passed, %d warnings, %d problems",
		len(r.passed), len(r.warnings), len(r.problems))))
}

func runChecks() *checkReport {
	r := &checkReport{}
	actorPrefabs := checkPrefabs(r)
	table, ok := checkCutscenes(r)
	checkItems(r)
	if ok {
		checkLevels(r, actorPrefabs, table)
	}
	return r
}

// checkPrefabs builds each entity prefab into a scratch world and returns
// the ones a level may place as actors.
func checkPrefabs(r *checkReport) map[string]bool {
	actors := map[string]bool{}
	files, err := fs.Glob(prefabs.PrefabsFS, "*.yaml")
	if err != nil {
		r.fail("prefabs", err)
		return actors
	}
	sort.Strings(files)
	for _, file := range files {
		spec, err := prefabs.LoadEntityBuildSpec(file)
		if err != nil {
			r.fail(file, err)
			continue
		}
		if len(spec.Components) == 0 {
			continue
		}
		w := ecs.NewWorld()
		if _, err := entity.BuildEntity(w, file); err != nil {
			r.fail(file, err)
			continue
		}
		r.pass(file)
		_, isPlayer := spec.Components["player"]
		_, isCamera := spec.Components["camera"]
		if !isPlayer && !isCamera {
			actors[strings.TrimSuffix(file, ".yaml")] = true
		}
	}
	return actors
}

func checkCutscenes(r *checkReport) (prefabs.CutsceneTable, bool) {
	table, err := prefabs.LoadCutscenes()
	if err != nil {
		r.fail("cutscenes.yaml", err)
		return table, false
	}

	builtins := cutscene.NewRegistry()
	if err := cutscene.RegisterBuiltins(builtins); err != nil {
		r.fail("builtin cutscenes", err)
	}

	used := map[string]bool{}
	for _, c := range table.Cutscenes {
		where := "cutscene " + c.Name
		if c.Script == "" {
			if _, ok := builtins.Lookup(c.Name); !ok {
				r.fail(where, errors.New("no script and no Go implementation"))
				continue
			}
			r.pass(where)
			continue
		}
		used[c.Script] = true
		src, err := prefabs.LoadScript(c.Script)
		if err != nil {
			r.fail(where, err)
			continue
		}
		if _, err := cutscene.Compile(c.Name, src); err != nil {
			r.fail(where, err)
			continue
		}
		r.pass(where)
	}

	scripts, err := prefabs.ScriptNames()
	if err != nil {
		r.fail("scripts", err)
		return table, true
	}
	for _, s := range scripts {
		if !used[s] {
			r.warn(s, errors.New("script is not listed in cutscenes.yaml"))
		}
	}
	return table, true
}

func checkItems(r *checkReport) {
	items, err := prefabs.LoadItems()
	if err != nil {
		r.fail("items.yaml", err)
		return
	}
	seen := map[string]bool{}
	for i, it := range items.Items {
		switch {
		case it.Name == "":
			r.fail("items.yaml", fmt.Errorf("item %d has no name", i))
		case seen[it.Name]:
			r.fail("items.yaml", fmt.Errorf("duplicate item %q", it.Name))
		case it.Color == nil:
			r.warn("item "+it.Name, errors.New("no color; the icon is drawn white"))
		}
		seen[it.Name] = true
	}
	r.pass(fmt.Sprintf("items.yaml (%d items)", len(items.Items)))
}

func checkLevels(r *checkReport, actorPrefabs map[string]bool, table prefabs.CutsceneTable) {
	names, err := levels.Names()
	if err != nil {
		r.fail("levels", err)
		return
	}
	for _, name := range names {
		where := "level " + name
		lvl, err := levels.Load(name)
		if err != nil {
			r.fail(where, err)
			continue
		}
		var errs []error
		for _, a := range lvl.Actors() {
			if !actorPrefabs[strings.TrimSuffix(a.Prefab, ".yaml")] {
				errs = append(errs, fmt.Errorf("actor %q uses unknown prefab %q", a.Name, a.Prefab))
			}
			if lvl.Solid(a.X, a.Y) {
				errs = append(errs, fmt.Errorf("actor %q starts inside a wall", a.Name))
			}
		}
		for _, t := range lvl.Triggers() {
			if _, ok := table.Find(t.Cutscene); !ok {
				errs = append(errs, fmt.Errorf("trigger %q cues unknown cutscene %q", t.ID, t.Cutscene))
			}
		}
		if x, y, _ := lvl.PlayerSpawn(); lvl.Solid(x, y) {
			errs = append(errs, errors.New("player spawn is inside a wall"))
		}
		if len(errs) > 0 {
			r.fail(where, errors.Join(errs...))
			continue
		}
		r.pass(where)
	}
}
