// Package content loads unit stat blocks from YAML catalogs
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/antcolony/parameter"
)

//go:embed units.yaml
var defaultUnits []byte

// ErrUnknownKind is returned when a kind has no stat block
var ErrUnknownKind = errors.New("unknown unit kind")

// ErrInvalidStatBlock is returned for stat blocks that fail validation
var ErrInvalidStatBlock = errors.New("invalid stat block")

// Catalog maps unit kinds to stat blocks
// Later loads override earlier entries of the same kind
type Catalog struct {
	mu     sync.RWMutex
	blocks map[string]*StatBlock
	logger *zap.Logger
}

// NewCatalog creates an empty catalog
func NewCatalog(logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{
		blocks: make(map[string]*StatBlock),
		logger: logger,
	}
}

// DefaultCatalog returns a catalog populated from the embedded unit file
func DefaultCatalog(logger *zap.Logger) (*Catalog, error) {
	c := NewCatalog(logger)
	if err := c.Load(defaultUnits); err != nil {
		return nil, fmt.Errorf("embedded catalog: %w", err)
	}
	return c, nil
}

// Load parses a YAML catalog and merges it
// The whole document is rejected if any block fails validation
func (c *Catalog) Load(data []byte) error {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to unmarshal catalog: %w", err)
	}

	for kind, block := range file.Units {
		if block == nil {
			return fmt.Errorf("kind '%s': %w: empty block", kind, ErrInvalidStatBlock)
		}
		block.Kind = kind
		block.Normalize()
		if err := block.Validate(); err != nil {
			return fmt.Errorf("kind '%s': %w", kind, err)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for kind, block := range file.Units {
		c.blocks[kind] = block
	}
	return nil
}

// LoadFile merges a single catalog file
func (c *Catalog) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read catalog %s: %w", path, err)
	}
	if err := c.Load(data); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	c.logger.Info("catalog loaded", zap.String("path", path))
	return nil
}

// LoadDir merges every .yaml/.yml file in dir in lexical order
// Hidden files are skipped; a missing directory is not an error
func (c *Catalog) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			c.logger.Debug("catalog directory missing", zap.String("dir", dir))
			return nil
		}
		return fmt.Errorf("read catalog dir %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		ext := strings.ToLower(filepath.Ext(name))
		if ext == ".yaml" || ext == ".yml" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		if err := c.LoadFile(filepath.Join(dir, name)); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the stat block for kind
func (c *Catalog) Lookup(kind string) (*StatBlock, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	block, ok := c.blocks[kind]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownKind, kind)
	}
	return block, nil
}

// Resolve returns the stat block for kind, falling back to DefaultStatBlock
// The fallback is logged and never fails
func (c *Catalog) Resolve(kind string) *StatBlock {
	block, err := c.Lookup(kind)
	if err == nil {
		return block
	}
	c.logger.Warn("missing stat block, using default",
		zap.String("kind", kind),
		zap.Error(err))
	return DefaultStatBlock(kind)
}

// Kinds returns all known kinds in sorted order
func (c *Catalog) Kinds() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	kinds := make([]string, 0, len(c.blocks))
	for k := range c.blocks {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// KindsOf returns kinds belonging to faction, sorted, excluding bosses and leaders
func (c *Catalog) KindsOf(faction string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	kinds := make([]string, 0)
	for k, b := range c.blocks {
		if b.Faction == faction && b.Boss == nil && !b.Leader {
			kinds = append(kinds, k)
		}
	}
	sort.Strings(kinds)
	return kinds
}

// BossKinds returns hostile boss kinds, sorted
func (c *Catalog) BossKinds() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	kinds := make([]string, 0)
	for k, b := range c.blocks {
		if b.Faction == "hostile" && b.Boss != nil {
			kinds = append(kinds, k)
		}
	}
	sort.Strings(kinds)
	return kinds
}

// LeaderKind returns the first colony kind flagged leader, in sorted order
func (c *Catalog) LeaderKind() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	kinds := make([]string, 0, 1)
	for k, b := range c.blocks {
		if b.Faction == "colony" && b.Leader {
			kinds = append(kinds, k)
		}
	}
	if len(kinds) == 0 {
		return "", false
	}
	sort.Strings(kinds)
	return kinds[0], true
}

// DefaultStatBlock is the documented fallback for unknown kinds:
// a hostile melee unit with parameter.Default* stats and no abilities
func DefaultStatBlock(kind string) *StatBlock {
	return &StatBlock{
		Kind:           kind,
		Faction:        "hostile",
		HP:             parameter.DefaultHP,
		Damage:         parameter.DefaultDamage,
		Speed:          parameter.DefaultSpeed,
		Perception:     parameter.DefaultPerception,
		Range:          parameter.DefaultRange,
		CooldownFrames: parameter.DefaultCooldownFrames,
		Reward:         parameter.DefaultReward,
		Attack:         "melee",
		Ability:        "none",
	}
}

// Validate checks the block for values the simulation cannot run with
func (s *StatBlock) Validate() error {
	switch {
	case s.HP <= 0:
		return fmt.Errorf("%w: hp must be positive", ErrInvalidStatBlock)
	case s.Faction != "colony" && s.Faction != "hostile":
		return fmt.Errorf("%w: unknown faction '%s'", ErrInvalidStatBlock, s.Faction)
	case s.Attack != "melee" && s.Attack != "ranged":
		return fmt.Errorf("%w: unknown attack '%s'", ErrInvalidStatBlock, s.Attack)
	case s.Attack == "ranged" && (s.Projectile == nil || s.Projectile.Speed <= 0):
		return fmt.Errorf("%w: ranged attack needs a projectile with positive speed", ErrInvalidStatBlock)
	case s.Ability == "burst" && (s.Explode == nil || s.Explode.Radius <= 0):
		return fmt.Errorf("%w: burst ability needs an explode radius", ErrInvalidStatBlock)
	case s.Charges < 0:
		return fmt.Errorf("%w: negative charges", ErrInvalidStatBlock)
	}
	if s.OnHit != nil {
		switch s.OnHit.Kind {
		case "slow", "confusion", "dot", "knockback":
		default:
			return fmt.Errorf("%w: unknown effect '%s'", ErrInvalidStatBlock, s.OnHit.Kind)
		}
	}
	if s.Boss != nil {
		switch s.Boss.Variant {
		case "summon", "dive", "territory":
		default:
			return fmt.Errorf("%w: unknown boss variant '%s'", ErrInvalidStatBlock, s.Boss.Variant)
		}
	}
	return nil
}

// Normalize fills zero values with defaults, idempotent
func (s *StatBlock) Normalize() {
	if s.Attack == "" {
		s.Attack = "melee"
	}
	if s.Ability == "" {
		s.Ability = "none"
	}
	if s.Perception <= 0 {
		s.Perception = parameter.DefaultPerception
	}
	if s.Range <= 0 {
		s.Range = parameter.DefaultRange
	}
	if s.CooldownFrames <= 0 {
		s.CooldownFrames = parameter.DefaultCooldownFrames
	}
	if p := s.Projectile; p != nil {
		if p.HitRadius <= 0 {
			if p.Arc {
				p.HitRadius = parameter.ArcHitRadius
			} else {
				p.HitRadius = parameter.ProjectileHitRadius
			}
		}
		if p.Arc && p.Gravity <= 0 {
			p.Gravity = parameter.ArcGravity
		}
	}
	if e := s.OnHit; e != nil && e.Kind == "dot" && e.IntervalFrames <= 0 {
		e.IntervalFrames = parameter.DOTIntervalFrames
	}
	if b := s.Boss; b != nil {
		if b.SpecialCooldownFrames <= 0 {
			b.SpecialCooldownFrames = parameter.BossSpecialCooldownFrames
		}
		if b.GuardCap <= 0 {
			b.GuardCap = parameter.BossGuardCap
		}
		if b.GuardsPerSummon <= 0 {
			b.GuardsPerSummon = parameter.BossGuardsPerSummon
		}
		if b.PatrolRadius <= 0 {
			b.PatrolRadius = parameter.BossPatrolRadius
		}
		if b.DiveSpeedFactor <= 0 {
			b.DiveSpeedFactor = parameter.BossDiveSpeedFactor
		}
		if b.EnrageThreshold <= 0 {
			b.EnrageThreshold = parameter.BossEnrageThreshold
		}
	}
}
