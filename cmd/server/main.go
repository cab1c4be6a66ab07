package main

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/steadling/farmcore/internal/content"
	"github.com/steadling/farmcore/internal/verify"
	"github.com/steadling/farmcore/internal/wormhole"
)

type serverConfig struct {
	Addr     string        `env:"ADDR" envDefault:":8080"`
	Dir      string        `env:"CONFIG_DIR" envDefault:"./config"`
	Snapshot string        `env:"CONFIG_SNAPSHOT"`
	Watch    bool          `env:"CONFIG_WATCH"`
	Interval time.Duration `env:"CONFIG_WATCH_INTERVAL" envDefault:"2s"`
}

var hub = wormhole.NewHub()

// effectRef names a rub effect by the item that grants it.
type effectRef struct {
	Item   string `json:"item"`
	Effect int    `json:"effect"`
}

type yieldReq struct {
	Plant   string      `json:"plant"`
	XP      int         `json:"xp"`
	Effects []effectRef `json:"effects,omitempty"`
	Stead   string      `json:"stead,omitempty"`
	Seed    *uint64     `json:"seed,omitempty"`
}

type craftReq struct {
	Plant  string  `json:"plant"`
	XP     int     `json:"xp"`
	Recipe int     `json:"recipe"`
	Stead  string  `json:"stead,omitempty"`
	Seed   *uint64 `json:"seed,omitempty"`
}

type yieldResp struct {
	XP    int      `json:"xp"`
	Items []string `json:"items"`
}

// rngFor honors an optional seed so responses can be replayed.
func rngFor(seed *uint64) content.RandomSource {
	if seed != nil {
		return content.NewSeededRNG(*seed)
	}
	return content.DefaultRNG()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "bad request body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func handleItem(w http.ResponseWriter, r *http.Request) {
	cfg := content.Current()
	h, err := cfg.ItemNamed(r.URL.Query().Get("name"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Handle    content.ItemHandle `json:"handle"`
		Archetype *content.Archetype `json:"archetype"`
	}{h, cfg.MustItem(h)})
}

func handlePlant(w http.ResponseWriter, r *http.Request) {
	cfg := content.Current()
	h, err := cfg.PlantNamed(r.URL.Query().Get("name"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Handle    content.PlantHandle     `json:"handle"`
		Archetype *content.PlantArchetype `json:"archetype"`
	}{h, cfg.MustPlant(h)})
}

// resolveEffects turns (item, effect index) references into the buff
// kinds they grant, flattening any Neighbor wrapping since these are
// effects the caller already applied to this plant.
func resolveEffects(cfg *content.Config, refs []effectRef) ([]content.PlantAdvancementKind[content.ItemHandle], error) {
	var kinds []content.PlantAdvancementKind[content.ItemHandle]
	for _, ref := range refs {
		h, err := cfg.ItemNamed(ref.Item)
		if err != nil {
			return nil, err
		}
		eff, err := cfg.RubEffect(h, ref.Effect)
		if err != nil {
			return nil, err
		}
		if eff.Buff == nil {
			continue
		}
		kinds = append(kinds, content.UnwrapAll([]content.PlantAdvancementKind[content.ItemHandle]{*eff.Buff})...)
	}
	return kinds, nil
}

// handleYield evaluates one yield of the named plant at the given xp:
// fold the unlocked bonuses plus any applied effects, scale the spawn
// table, roll it.
func handleYield(w http.ResponseWriter, r *http.Request) {
	var req yieldReq
	if !readJSON(w, r, &req) {
		return
	}
	cfg := content.Current()
	h, err := cfg.PlantNamed(req.Plant)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	extra, err := resolveEffects(cfg, req.Effects)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	sum := content.PlantSum(&cfg.MustPlant(h).Advancements, req.XP, extra)
	out := sum.YieldEvalput().Evaluate(rngFor(req.Seed))

	resp := yieldResp{XP: out.XP, Items: make([]string, len(out.Items))}
	for i, item := range out.Items {
		resp.Items[i] = cfg.MustItem(item).Name
	}
	writeJSON(w, http.StatusOK, resp)

	if req.Stead != "" {
		hub.Send(wormhole.Note{
			Kind:    wormhole.NoteYieldResult,
			SteadID: req.Stead,
			XP:      resp.XP,
			Items:   resp.Items,
		})
	}
}

// handleCraft evaluates finishing recipe idx of the named plant at the
// given xp, rolling the double-output bonus the fold grants.
func handleCraft(w http.ResponseWriter, r *http.Request) {
	var req craftReq
	if !readJSON(w, r, &req) {
		return
	}
	cfg := content.Current()
	h, err := cfg.PlantNamed(req.Plant)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	sum := content.PlantSum(&cfg.MustPlant(h).Advancements, req.XP, nil)
	if req.Recipe < 0 || req.Recipe >= len(sum.Recipes) {
		http.Error(w, "no such recipe at this xp", http.StatusNotFound)
		return
	}

	rng := rngFor(req.Seed)
	made := sum.Recipes[req.Recipe].Makes.Output(rng)
	if sum.CraftOutputDoubleChance > 0 && rng.Float64() < sum.CraftOutputDoubleChance {
		made = append(made, made...)
	}

	resp := yieldResp{Items: make([]string, len(made))}
	for i, item := range made {
		resp.Items[i] = cfg.MustItem(item).Name
	}
	writeJSON(w, http.StatusOK, resp)

	if req.Stead != "" {
		hub.Send(wormhole.Note{
			Kind:    wormhole.NoteCraftResult,
			SteadID: req.Stead,
			Items:   resp.Items,
			Title:   sum.Recipes[req.Recipe].Title,
		})
	}
}

func loadConfig(sc serverConfig) (*content.Config, error) {
	if sc.Snapshot != "" {
		return verify.ReadBinaryFile(sc.Snapshot)
	}
	raw, err := verify.Parse(sc.Dir)
	if err != nil {
		return nil, err
	}
	return raw.Verify()
}

func main() {
	var sc serverConfig
	if err := env.Parse(&sc); err != nil {
		log.Fatalf("parse environment: %v", err)
	}

	cfg, err := loadConfig(sc)
	if err != nil {
		log.Fatalf("load content:\n%v", err)
	}
	if err := content.Init(cfg); err != nil {
		log.Fatalf("install content: %v", err)
	}
	log.Printf("content loaded: %d items, %d plants", len(cfg.Items), len(cfg.Plants))

	if sc.Watch && sc.Snapshot == "" {
		watcher := verify.NewWatcher(sc.Dir, sc.Interval, func(path string) {
			log.Printf("content changed: %s, reloading", path)
			fresh, err := loadConfig(sc)
			if err != nil {
				log.Printf("reload failed, keeping old content:\n%v", err)
				return
			}
			content.Swap(fresh)
			log.Printf("content reloaded: %d items, %d plants", len(fresh.Items), len(fresh.Plants))
		})
		watcher.Start()
		defer watcher.Stop()
	}

	http.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	http.HandleFunc("/archetype/item", handleItem)
	http.HandleFunc("/archetype/plant", handlePlant)
	http.HandleFunc("/plant/yield", handleYield)
	http.HandleFunc("/craft/finish", handleCraft)
	http.Handle("/ws", hub.Handler())

	log.Printf("listening on %s", sc.Addr)
	log.Fatal(http.ListenAndServe(sc.Addr, nil))
}
