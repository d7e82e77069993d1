package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	json "github.com/goccy/go-json"
	"golang.org/x/term"

	"github.com/vanderheijden86/menuwork/pkg/anchor"
	"github.com/vanderheijden86/menuwork/pkg/config"
	"github.com/vanderheijden86/menuwork/pkg/export"
	"github.com/vanderheijden86/menuwork/pkg/loader"
	"github.com/vanderheijden86/menuwork/pkg/menu"
	"github.com/vanderheijden86/menuwork/pkg/model"
	"github.com/vanderheijden86/menuwork/pkg/store"
	"github.com/vanderheijden86/menuwork/pkg/ui"
)

var version = "dev"

const builtinPrefix = "builtin:"

func main() {
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	menuFile := flag.String("menu", "", "Menu definition file (.menu.yaml or .menu.json)")
	builtinName := flag.String("builtin", "", "Open a built-in menu (see --list-builtins)")
	configFile := flag.String("config", "", "Config file (default: nearest .mw/config.yaml)")
	pick := flag.Bool("pick", false, "Choose a menu interactively from discovered files")
	list := flag.Bool("list", false, "List discovered menu files and exit")
	listBuiltins := flag.Bool("list-builtins", false, "List built-in menus and exit")
	rtl := flag.Bool("rtl", false, "Force right-to-left layout")
	robotState := flag.Bool("robot-state", false, "Output menu state as JSON (use with --keys)")
	keys := flag.String("keys", "", "Comma-separated keys replayed before --robot-state (e.g. tab,down,right)")
	robotHistory := flag.Int("robot-history", 0, "Output the N most recent selections as JSON")
	exportMD := flag.String("export-md", "", "Export the menu tree to a Markdown file")
	exportSVG := flag.String("export-svg", "", "Export the menu tree to an SVG file")
	exportPNG := flag.String("export-png", "", "Export the menu tree to a PNG file")
	noState := flag.Bool("no-state", false, "Do not read or write the state database")
	flag.Parse()

	if *help {
		fmt.Println("Usage: mw [options]")
		fmt.Println("\nA keyboard-driven menu browser for declarative menu files.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("mw %s\n", version)
		os.Exit(0)
	}

	if *listBuiltins {
		for _, s := range model.BuiltinMenus() {
			fmt.Printf("%-10s %s\n", s.Name, s.Description)
		}
		os.Exit(0)
	}

	if os.Getenv("MW_DEBUG") != "" {
		f, err := tea.LogToFile(filepath.Join(os.TempDir(), "mw-debug.log"), "mw")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening debug log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting working directory: %v\n", err)
		os.Exit(1)
	}
	if *configFile != "" {
		os.Setenv(config.EnvConfig, *configFile)
	}
	cfg, cfgPath, err := config.Load(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config %s: %v\n", cfgPath, err)
		os.Exit(1)
	}
	if *rtl {
		cfg.Direction = "rtl"
	}

	projectDir, found := config.ProjectRoot(cwd)
	if !found {
		projectDir = cwd
	}

	if *list {
		if err := listMenus(os.Stdout, *cfg, projectDir); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading menus: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	var choice string
	if *pick {
		choice, err = pickMenu(*cfg, projectDir)
		if errors.Is(err, huh.ErrUserAborted) {
			os.Exit(0)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error picking menu: %v\n", err)
			os.Exit(1)
		}
	}

	spec, specPath, err := resolveSpec(source{
		file:    *menuFile,
		builtin: *builtinName,
		choice:  choice,
	}, *cfg, projectDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading menu: %v\n", err)
		os.Exit(1)
	}

	if *exportMD != "" || *exportSVG != "" || *exportPNG != "" {
		if err := exportAll(spec, *exportMD, *exportSVG, *exportPNG); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Non-interactive output when asked for, or when stdout is not a terminal
	if *robotState || *keys != "" || (*robotHistory == 0 && !term.IsTerminal(int(os.Stdout.Fd()))) {
		out, err := robotStateJSON(spec, cfg.Direction, *keys)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
		os.Exit(0)
	}

	var st *store.Store
	if !*noState {
		if found {
			if err := loader.EnsureStateDirIgnored(projectDir); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not update .gitignore: %v\n", err)
			}
		}
		st, err = store.Open(cfg.ResolvedStatePath(projectDir))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: state disabled: %v\n", err)
			st = nil
		} else {
			defer st.Close()
		}
	}

	if *robotHistory > 0 {
		if st == nil {
			fmt.Fprintln(os.Stderr, "Error: --robot-history needs the state database")
			os.Exit(1)
		}
		out, err := historyJSON(context.Background(), st, spec.Name, *robotHistory)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading history: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
		os.Exit(0)
	}

	opts := ui.Options{
		Config: *cfg,
		Runner: ui.NewActionRunner(cfg.Shell, projectDir),
	}
	if st != nil {
		opts.Store = st
	}
	m, err := ui.NewModel(spec, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.Layout.Mouse {
		progOpts = append(progOpts, tea.WithMouseAllMotion())
	}
	p := tea.NewProgram(m, progOpts...)

	// Live reload only applies to menus read from disk
	if specPath != "" {
		worker, err := ui.NewReloadWorker(ui.WorkerConfig{Path: specPath, Sender: p})
		if err != nil {
			log.Printf("warning: live reload disabled: %v", err)
		} else {
			if err := worker.Start(); err != nil {
				log.Printf("warning: live reload disabled: %v", err)
			}
			defer worker.Stop()
		}
	}

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running mw: %v\n", err)
		os.Exit(1)
	}
}

// source names where the menu comes from, in priority order.
type source struct {
	file    string
	builtin string
	choice  string // from --pick: a path or builtin:<name>
}

// resolveSpec picks the menu to open: explicit flags first, then the
// configured menu, then the only discovered file, then the editor built-in.
// The returned path is empty for built-in menus.
func resolveSpec(src source, cfg config.Config, projectDir string) (*model.MenuSpec, string, error) {
	if name, ok := strings.CutPrefix(src.choice, builtinPrefix); ok {
		src.builtin = name
	} else if src.choice != "" {
		src.file = src.choice
	}

	if src.builtin != "" {
		s, ok := model.Builtin(src.builtin)
		if !ok {
			return nil, "", fmt.Errorf("unknown built-in menu %q", src.builtin)
		}
		return &s, "", nil
	}

	path := src.file
	if path == "" && cfg.Menu != "" {
		path = cfg.Menu
		if !filepath.IsAbs(path) {
			path = filepath.Join(projectDir, path)
		}
	}
	if path == "" {
		if found := config.DiscoverMenus(cfg, projectDir); len(found) == 1 {
			path = found[0]
		}
	}
	if path == "" {
		s := model.EditorMenu()
		return &s, "", nil
	}

	spec, err := loader.LoadFile(path)
	if err != nil {
		return nil, "", err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return spec, abs, nil
}

// pickMenu offers discovered files and built-ins in a select prompt.
func pickMenu(cfg config.Config, projectDir string) (string, error) {
	var options []huh.Option[string]
	for _, p := range config.DiscoverMenus(cfg, projectDir) {
		label := p
		if rel, err := filepath.Rel(projectDir, p); err == nil {
			label = rel
		}
		options = append(options, huh.NewOption(label, p))
	}
	for _, s := range model.BuiltinMenus() {
		options = append(options, huh.NewOption(s.Name+" (built-in)", builtinPrefix+s.Name))
	}

	var choice string
	err := huh.NewSelect[string]().
		Title("Open which menu?").
		Options(options...).
		Value(&choice).
		Run()
	return choice, err
}

// listMenus prints every discovered menu with its name and item count.
func listMenus(w io.Writer, cfg config.Config, projectDir string) error {
	paths := config.DiscoverMenus(cfg, projectDir)
	if len(paths) == 0 {
		fmt.Fprintln(w, "No menu files found.")
		return nil
	}
	specs, err := loader.LoadAll(context.Background(), paths)
	if err != nil {
		return err
	}
	byName := make(map[*model.MenuSpec]string, len(specs))
	for i, s := range specs {
		byName[s] = paths[i]
	}
	loader.SortByName(specs)
	for _, s := range specs {
		rel := byName[s]
		if r, err := filepath.Rel(projectDir, rel); err == nil {
			rel = r
		}
		fmt.Fprintf(w, "%-16s %3d items  %s\n", s.Name, len(s.Items), rel)
	}
	return nil
}

// exportAll writes whichever of the Markdown, SVG and PNG renderings were
// requested.
func exportAll(spec *model.MenuSpec, mdPath, svgPath, pngPath string) error {
	root := model.Build(spec)
	title := spec.Title
	if title == "" {
		title = spec.Name
	}

	if mdPath != "" {
		md := export.GenerateMarkdown(root, title, time.Now())
		if err := os.WriteFile(mdPath, []byte(md), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", mdPath, err)
		}
		fmt.Printf("Exported menu to %s\n", mdPath)
	}
	if svgPath != "" {
		f, err := os.Create(svgPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", svgPath, err)
		}
		if err := export.WriteSVG(f, root, title); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", svgPath, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Printf("Exported menu to %s\n", svgPath)
	}
	if pngPath != "" {
		if err := export.SavePNG(pngPath, root, title); err != nil {
			return fmt.Errorf("writing %s: %w", pngPath, err)
		}
		fmt.Printf("Exported menu to %s\n", pngPath)
	}
	return nil
}

// robotStateJSON mounts the menu headless, replays keys and returns the
// resulting state. Submenus settle synchronously.
func robotStateJSON(spec *model.MenuSpec, dirOverride, keys string) ([]byte, error) {
	dirName := spec.Direction
	if dirOverride != "" {
		dirName = dirOverride
	}
	dir := menu.ParseDirection(dirName)

	region := anchor.NewRegion(nil, nil, anchor.Immediate)
	region.SetDirection(dir)
	doc := menu.NewDocument()
	doc.SetPositioner(region)
	doc.SetDirection(dir)
	doc.Mount(model.Build(spec))

	if err := replayKeys(doc, keys); err != nil {
		return nil, err
	}
	return export.StateJSON(doc, spec.Name)
}

// replayKeys feeds a comma-separated key list to doc. "tab" moves focus into
// the menu, "esc" and "blur" move it out; other names are menu keys.
func replayKeys(doc *menu.Document, keys string) error {
	if strings.TrimSpace(keys) == "" {
		return nil
	}
	for _, name := range strings.Split(keys, ",") {
		switch n := strings.ToLower(strings.TrimSpace(name)); n {
		case "tab":
			doc.TabInto()
		case "esc", "blur":
			doc.Blur()
		default:
			k, ok := menu.ParseKey(n)
			if !ok {
				return fmt.Errorf("unknown key %q", name)
			}
			if doc.Active() == nil {
				return fmt.Errorf("key %q sent with nothing focused (start with tab)", name)
			}
			doc.DispatchKey(k)
		}
	}
	return nil
}

type historyEntry struct {
	Path  string    `json:"path"`
	At    time.Time `json:"at"`
	Count int       `json:"count"`
}

type historyOutput struct {
	Menu        string         `json:"menu"`
	GeneratedAt time.Time      `json:"generated_at"`
	Recent      []historyEntry `json:"recent"`
}

// historyJSON reports the latest selections for menuName with their totals.
func historyJSON(ctx context.Context, st *store.Store, menuName string, limit int) ([]byte, error) {
	recent, err := st.RecentActivations(ctx, menuName, limit)
	if err != nil {
		return nil, err
	}
	counts, err := st.Counts(ctx, menuName)
	if err != nil {
		return nil, err
	}
	out := historyOutput{Menu: menuName, GeneratedAt: time.Now(), Recent: []historyEntry{}}
	for _, a := range recent {
		out.Recent = append(out.Recent, historyEntry{Path: a.Path, At: a.At, Count: counts[a.Path]})
	}
	return json.MarshalIndent(out, "", "  ")
}
