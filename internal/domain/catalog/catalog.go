package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"amat_hosting/internal/domain/entities"
)

// Catalog is the immutable set of sellable packages, built once at start-up.
type Catalog struct {
	byID  map[string]entities.Package
	order []string
}

type catalogFile struct {
	Packages []entities.Package `yaml:"packages"`
}

func botResources(memoryMB, cpu, diskMB int64) entities.PackageResources {
	return entities.PackageResources{
		MemoryMB:        memoryMB,
		CPUPercent:      cpu,
		DiskMB:          diskMB,
		AllocationCount: 1,
		DatabaseCount:   0,
		EggID:           5,
		NestID:          1,
		LocationID:      1,
		StartupCommand:  "node index.js",
	}
}

var builtin = []entities.Package{
	{ID: "bot-sentinel", DisplayName: "Bot Sentinel", Price: 500, Resources: botResources(2048, 100, 10240)},
	{ID: "bot-guardian", DisplayName: "Bot Guardian", Price: 60000, Resources: botResources(4096, 200, 20480)},
	{ID: "bot-titan", DisplayName: "Bot Titan", Price: 80000, Resources: botResources(6144, 300, 30720)},
	{ID: "bot-colossus", DisplayName: "Bot Colossus", Price: 100000, Resources: botResources(8192, 400, 40960)},
	{ID: "bot-infinity", DisplayName: "Bot Infinity", Price: 150000, Resources: botResources(0, 0, 51200)},
}

// Default returns the built-in package table.
func Default() *Catalog {
	c, _ := New(builtin)
	return c
}

// New validates packages and builds a Catalog from them.
func New(packages []entities.Package) (*Catalog, error) {
	if len(packages) == 0 {
		return nil, fmt.Errorf("catalog: no packages")
	}
	c := &Catalog{byID: make(map[string]entities.Package, len(packages))}
	for _, p := range packages {
		p.ID = strings.TrimSpace(p.ID)
		if p.ID == "" {
			return nil, fmt.Errorf("catalog: package with empty id")
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("catalog: package %s has negative price", p.ID)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate package %s", p.ID)
		}
		if p.DisplayName == "" {
			p.DisplayName = p.ID
		}
		c.byID[p.ID] = p
		c.order = append(c.order, p.ID)
	}
	return c, nil
}

// Load reads a YAML catalog from path, or returns Default when path is empty.
func Load(path string) (*Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", path, err)
	}
	return New(f.Packages)
}

func (c *Catalog) Get(id string) (entities.Package, bool) {
	p, ok := c.byID[strings.TrimSpace(id)]
	return p, ok
}

func (c *Catalog) List() []entities.Package {
	out := make([]entities.Package, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}
