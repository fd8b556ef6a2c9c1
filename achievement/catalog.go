package achievement

import (
	"fmt"

	"github.com/samber/lo"
)

// ID identifies an achievement in the catalog.
type ID string

const (
	FirstBlood    ID = "FIRST_BLOOD"
	Collector     ID = "COLLECTOR"
	Survivor      ID = "SURVIVOR"
	ComboMaster   ID = "COMBO_MASTER"
	BossSlayer    ID = "BOSS_SLAYER"
	Untouchable   ID = "UNTOUCHABLE"
	SpeedDemon    ID = "SPEED_DEMON"
	PumpkinMaster ID = "PUMPKIN_MASTER"
	Immortal      ID = "IMMORTAL"
	ComboGod      ID = "COMBO_GOD"
)

// Kind is the counter a threshold requirement compares against.
type Kind string

const (
	KindCollect  Kind = "collect"
	KindRound    Kind = "round"
	KindCombo    Kind = "combo"
	KindBoss     Kind = "boss"
	KindScore    Kind = "score"
	KindNoDamage Kind = "noDamage"
	KindSpeed    Kind = "speed"
)

// Requirement is the unlock condition of a definition. The set of
// implementations is closed: Threshold and Speed.
type Requirement interface {
	Kind() Kind
	requirement()
}

// Threshold unlocks once the counter named by On reaches Count.
type Threshold struct {
	On    Kind
	Count int
}

func (r Threshold) Kind() Kind { return r.On }
func (Threshold) requirement() {}

// Speed unlocks once Count collects fall inside a trailing Window seconds.
type Speed struct {
	Count  int
	Window float64
}

func (Speed) Kind() Kind { return KindSpeed }
func (Speed) requirement() {}

// Definition is an immutable catalog entry.
type Definition struct {
	ID          ID
	Name        string
	Description string
	Icon        string
	Requirement Requirement
}

var catalog = []Definition{
	{ID: FirstBlood, Name: "First Blood", Description: "Collect your first item", Icon: "🎃",
		Requirement: Threshold{On: KindCollect, Count: 1}},
	{ID: Collector, Name: "Collector", Description: "Collect 50 items in one game", Icon: "🍬",
		Requirement: Threshold{On: KindCollect, Count: 50}},
	{ID: Survivor, Name: "Survivor", Description: "Reach round 10", Icon: "💀",
		Requirement: Threshold{On: KindRound, Count: 10}},
	{ID: ComboMaster, Name: "Combo Master", Description: "Achieve a 10x combo", Icon: "🔥",
		Requirement: Threshold{On: KindCombo, Count: 10}},
	{ID: BossSlayer, Name: "Boss Slayer", Description: "Defeat your first boss", Icon: "⚔️",
		Requirement: Threshold{On: KindBoss, Count: 1}},
	{ID: Untouchable, Name: "Untouchable", Description: "Complete 3 rounds without taking damage", Icon: "🛡️",
		Requirement: Threshold{On: KindNoDamage, Count: 3}},
	{ID: SpeedDemon, Name: "Speed Demon", Description: "Collect 5 items in 5 seconds", Icon: "⚡",
		Requirement: Speed{Count: 5, Window: 5}},
	{ID: PumpkinMaster, Name: "Pumpkin Master", Description: "Score 1000 points", Icon: "👑",
		Requirement: Threshold{On: KindScore, Count: 1000}},
	{ID: Immortal, Name: "Immortal", Description: "Reach round 20", Icon: "👻",
		Requirement: Threshold{On: KindRound, Count: 20}},
	{ID: ComboGod, Name: "Combo God", Description: "Achieve a 20x combo", Icon: "🌟",
		Requirement: Threshold{On: KindCombo, Count: 20}},
}

// Catalog returns a copy of every definition in catalog order.
func Catalog() []Definition {
	return append([]Definition(nil), catalog...)
}

// Lookup returns the definition for id.
func Lookup(id ID) (Definition, bool) {
	return lo.Find(catalog, func(d Definition) bool { return d.ID == id })
}

// ValidateCatalog checks that ids are unique and every requirement has a
// positive threshold.
func ValidateCatalog(defs []Definition) error {
	seen := make(map[ID]bool, len(defs))
	for _, d := range defs {
		if d.ID == "" {
			return fmt.Errorf("achievement: empty id")
		}
		if seen[d.ID] {
			return fmt.Errorf("achievement: duplicate id %s", d.ID)
		}
		seen[d.ID] = true

		switch r := d.Requirement.(type) {
		case Threshold:
			if r.Count <= 0 {
				return fmt.Errorf("achievement: %s: threshold must be positive, got %d", d.ID, r.Count)
			}
			if r.On == KindSpeed {
				return fmt.Errorf("achievement: %s: speed requirement needs a window", d.ID)
			}
		case Speed:
			if r.Count <= 0 || r.Window <= 0 {
				return fmt.Errorf("achievement: %s: speed requirement must be positive, got %d in %gs", d.ID, r.Count, r.Window)
			}
		default:
			return fmt.Errorf("achievement: %s: unknown requirement %T", d.ID, d.Requirement)
		}
	}
	return nil
}
