// Package catalog holds the static badge definitions and the pure
// requirement-evaluation logic. The catalog is built once at init and
// never mutated; persistence of earned badges lives in the services layer.
package catalog

import (
	"math"

	"core/models"
)

// Stat keys a requirement can reference. Every key resolves against a
// models.DetailedStats snapshot via StatValue.
const (
	StatRegistered      = "registered"
	StatMatchesPlayed   = "matches_played"
	StatMatchesWon      = "matches_won"
	StatEloRating       = "elo_rating"
	StatWinStreak       = "win_streak"
	StatMaxStreak       = "max_streak"
	StatUniqueOpponents = "unique_opponents"
	StatWinRatio        = "win_ratio"
	StatRankFirst       = "rank_first"
	StatMatches30Days   = "matches_30d"
	StatWins30Days      = "wins_30d"

	StatReyMesaWins     = "rey_mesa_wins"
	StatTorneoWins      = "torneo_wins"
	StatLigaGruposWins  = "liga_grupos_wins"
	StatLigaFinalesWins = "liga_finales_wins"
)

// Requirement is a condition over a stats snapshot. The three kinds mirror
// what badges need: a numeric floor, a boolean flag, or an all-of compound.
type Requirement interface {
	Met(stats *models.DetailedStats) bool
	// Progress returns 0-100 completion towards this requirement.
	Progress(stats *models.DetailedStats) float64
}

// Numeric passes when the stat is at least Min.
type Numeric struct {
	Key string
	Min float64
}

func (r Numeric) Met(stats *models.DetailedStats) bool {
	return StatValue(stats, r.Key) >= r.Min
}

func (r Numeric) Progress(stats *models.DetailedStats) float64 {
	if r.Min <= 0 {
		return 100
	}
	return math.Min(100, StatValue(stats, r.Key)/r.Min*100)
}

// Boolean passes when the stat flag equals Expected.
type Boolean struct {
	Key      string
	Expected bool
}

func (r Boolean) Met(stats *models.DetailedStats) bool {
	return (StatValue(stats, r.Key) != 0) == r.Expected
}

func (r Boolean) Progress(stats *models.DetailedStats) float64 {
	if r.Met(stats) {
		return 100
	}
	return 0
}

// Compound passes when every nested requirement passes. Its progress is the
// mean of the nested progresses.
type Compound struct {
	Requirements []Requirement
}

func (r Compound) Met(stats *models.DetailedStats) bool {
	for _, req := range r.Requirements {
		if !req.Met(stats) {
			return false
		}
	}
	return true
}

func (r Compound) Progress(stats *models.DetailedStats) float64 {
	if len(r.Requirements) == 0 {
		return 100
	}
	var total float64
	for _, req := range r.Requirements {
		total += req.Progress(stats)
	}
	return total / float64(len(r.Requirements))
}

// StatValue resolves a stat key against a snapshot. Unknown keys read as 0 so
// a mistyped catalog entry can never award spuriously.
func StatValue(stats *models.DetailedStats, key string) float64 {
	switch key {
	case StatRegistered:
		return 1
	case StatMatchesPlayed:
		return float64(stats.MatchesPlayed)
	case StatMatchesWon:
		return float64(stats.MatchesWon)
	case StatEloRating:
		return stats.EloRating
	case StatWinStreak:
		return float64(stats.CurrentStreak)
	case StatMaxStreak:
		return float64(stats.MaxStreak)
	case StatUniqueOpponents:
		return float64(stats.UniqueOpponents)
	case StatWinRatio:
		return stats.WinRate / 100
	case StatRankFirst:
		if stats.Rank == 1 {
			return 1
		}
		return 0
	case StatMatches30Days:
		return float64(stats.Last30Days.Matches)
	case StatWins30Days:
		return float64(stats.Last30Days.Wins)
	case StatReyMesaWins:
		return float64(stats.ByCategory[models.CategoryReyMesa].Won)
	case StatTorneoWins:
		return float64(stats.ByCategory[models.CategoryTorneo].Won)
	case StatLigaGruposWins:
		return float64(stats.ByCategory[models.CategoryLigaGrupos].Won)
	case StatLigaFinalesWins:
		return float64(stats.ByCategory[models.CategoryLigaFinales].Won)
	}
	return 0
}

// Badge is one immutable catalog entry.
type Badge struct {
	ID           string
	Name         string
	Description  string
	Icon         string
	Category     string
	Rarity       string
	Points       int
	Secret       bool
	Requirements []Requirement
}

// Met reports whether all requirements pass.
func (b Badge) Met(stats *models.DetailedStats) bool {
	for _, req := range b.Requirements {
		if !req.Met(stats) {
			return false
		}
	}
	return true
}

// Progress is the mean completion over all requirement entries.
func (b Badge) Progress(stats *models.DetailedStats) float64 {
	if len(b.Requirements) == 0 {
		return 100
	}
	var total float64
	for _, req := range b.Requirements {
		total += req.Progress(stats)
	}
	return total / float64(len(b.Requirements))
}

func (b Badge) View() models.BadgeView {
	return models.BadgeView{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		Icon:        b.Icon,
		Category:    b.Category,
		Rarity:      b.Rarity,
		Points:      b.Points,
		Secret:      b.Secret,
	}
}

var badges = []Badge{
	// Beginner
	{
		ID: "first_steps", Name: "Primeros Pasos",
		Description: "Registra tu cuenta en el club",
		Icon:        "🎱", Category: models.BadgeCategoryProgress, Rarity: models.RarityCommon, Points: 10,
		Requirements: []Requirement{Boolean{Key: StatRegistered, Expected: true}},
	},
	{
		ID: "first_match", Name: "Debut",
		Description: "Juega tu primer partido",
		Icon:        "🎯", Category: models.BadgeCategoryProgress, Rarity: models.RarityCommon, Points: 25,
		Requirements: []Requirement{Numeric{Key: StatMatchesPlayed, Min: 1}},
	},
	{
		ID: "first_victory", Name: "Primera Victoria",
		Description: "Gana tu primer partido",
		Icon:        "🏆", Category: models.BadgeCategoryProgress, Rarity: models.RarityCommon, Points: 50,
		Requirements: []Requirement{Numeric{Key: StatMatchesWon, Min: 1}},
	},
	{
		ID: "rookie", Name: "Novato",
		Description: "Completa 5 partidos",
		Icon:        "🌱", Category: models.BadgeCategoryProgress, Rarity: models.RarityCommon, Points: 75,
		Requirements: []Requirement{Numeric{Key: StatMatchesPlayed, Min: 5}},
	},
	{
		ID: "getting_started", Name: "Tomando Ritmo",
		Description: "Gana 3 partidos",
		Icon:        "⚡", Category: models.BadgeCategoryProgress, Rarity: models.RarityUncommon, Points: 100,
		Requirements: []Requirement{Numeric{Key: StatMatchesWon, Min: 3}},
	},

	// Skill (Elo tiers)
	{
		ID: "rising_star", Name: "Estrella Emergente",
		Description: "Alcanza 1300 puntos ELO",
		Icon:        "⭐", Category: models.BadgeCategorySkill, Rarity: models.RarityUncommon, Points: 150,
		Requirements: []Requirement{Numeric{Key: StatEloRating, Min: 1300}},
	},
	{
		ID: "skilled_player", Name: "Jugador Hábil",
		Description: "Alcanza 1500 puntos ELO",
		Icon:        "🎯", Category: models.BadgeCategorySkill, Rarity: models.RarityRare, Points: 250,
		Requirements: []Requirement{Numeric{Key: StatEloRating, Min: 1500}},
	},
	{
		ID: "expert", Name: "Experto",
		Description: "Alcanza 1700 puntos ELO",
		Icon:        "🎓", Category: models.BadgeCategorySkill, Rarity: models.RarityEpic, Points: 400,
		Requirements: []Requirement{Numeric{Key: StatEloRating, Min: 1700}},
	},
	{
		ID: "master", Name: "Maestro",
		Description: "Alcanza 1900 puntos ELO",
		Icon:        "👑", Category: models.BadgeCategorySkill, Rarity: models.RarityLegendary, Points: 750,
		Requirements: []Requirement{Numeric{Key: StatEloRating, Min: 1900}},
	},
	{
		ID: "grandmaster", Name: "Gran Maestro",
		Description: "Alcanza 2100 puntos ELO",
		Icon:        "💎", Category: models.BadgeCategorySkill, Rarity: models.RarityMythic, Points: 1500,
		Requirements: []Requirement{Numeric{Key: StatEloRating, Min: 2100}},
	},

	// Dedication
	{
		ID: "dedicated", Name: "Dedicado",
		Description: "Juega 50 partidos",
		Icon:        "💪", Category: models.BadgeCategoryDedicated, Rarity: models.RarityRare, Points: 300,
		Requirements: []Requirement{Numeric{Key: StatMatchesPlayed, Min: 50}},
	},
	{
		ID: "veteran", Name: "Veterano",
		Description: "Juega 100 partidos",
		Icon:        "🛡️", Category: models.BadgeCategoryDedicated, Rarity: models.RarityEpic, Points: 500,
		Requirements: []Requirement{Numeric{Key: StatMatchesPlayed, Min: 100}},
	},
	{
		ID: "monthly_regular", Name: "Habitual del Mes",
		Description: "Juega 8 partidos en los últimos 30 días",
		Icon:        "📅", Category: models.BadgeCategoryDedicated, Rarity: models.RarityUncommon, Points: 200,
		Requirements: []Requirement{Numeric{Key: StatMatches30Days, Min: 8}},
	},

	// Social
	{
		ID: "friendly", Name: "Amigable",
		Description: "Juega contra 10 oponentes diferentes",
		Icon:        "🤝", Category: models.BadgeCategorySocial, Rarity: models.RarityUncommon, Points: 150,
		Requirements: []Requirement{Numeric{Key: StatUniqueOpponents, Min: 10}},
	},
	{
		ID: "socializer", Name: "Socializador",
		Description: "Juega contra 25 oponentes diferentes",
		Icon:        "👥", Category: models.BadgeCategorySocial, Rarity: models.RarityRare, Points: 300,
		Requirements: []Requirement{Numeric{Key: StatUniqueOpponents, Min: 25}},
	},

	// Streaks
	{
		ID: "hot_streak", Name: "Racha Caliente",
		Description: "Gana 3 partidos consecutivos",
		Icon:        "🔥", Category: models.BadgeCategoryStreak, Rarity: models.RarityUncommon, Points: 200,
		Requirements: []Requirement{Numeric{Key: StatWinStreak, Min: 3}},
	},
	{
		ID: "unstoppable", Name: "Imparable",
		Description: "Gana 5 partidos consecutivos",
		Icon:        "🚀", Category: models.BadgeCategoryStreak, Rarity: models.RarityRare, Points: 350,
		Requirements: []Requirement{Numeric{Key: StatWinStreak, Min: 5}},
	},
	{
		ID: "legendary_streak", Name: "Racha Legendaria",
		Description: "Gana 10 partidos consecutivos",
		Icon:        "⚡", Category: models.BadgeCategoryStreak, Rarity: models.RarityLegendary, Points: 800,
		Requirements: []Requirement{Numeric{Key: StatMaxStreak, Min: 10}},
	},
	{
		ID: "consistency_master", Name: "Maestro de la Consistencia",
		Description: "Mantén un 80% de victorias durante al menos 20 partidos",
		Icon:        "📊", Category: models.BadgeCategoryStreak, Rarity: models.RarityEpic, Points: 450,
		Requirements: []Requirement{Compound{Requirements: []Requirement{
			Numeric{Key: StatWinRatio, Min: 0.8},
			Numeric{Key: StatMatchesPlayed, Min: 20},
		}}},
	},

	// Legendary
	{
		ID: "club_legend", Name: "Leyenda del Club",
		Description: "Alcanza el puesto #1 en el ranking",
		Icon:        "👑", Category: models.BadgeCategorySpecial, Rarity: models.RarityLegendary, Points: 1000,
		Requirements: []Requirement{Boolean{Key: StatRankFirst, Expected: true}},
	},
	{
		ID: "centurion", Name: "Centurión",
		Description: "Gana 100 partidos",
		Icon:        "🏛️", Category: models.BadgeCategorySpecial, Rarity: models.RarityLegendary, Points: 1200,
		Requirements: []Requirement{Numeric{Key: StatMatchesWon, Min: 100}},
	},
	{
		ID: "untouchable", Name: "Intocable",
		Description: "Mantén un ratio de victorias del 90% con al menos 50 partidos",
		Icon:        "🛡️", Category: models.BadgeCategorySpecial, Rarity: models.RarityMythic, Points: 2500,
		Requirements: []Requirement{Compound{Requirements: []Requirement{
			Numeric{Key: StatWinRatio, Min: 0.9},
			Numeric{Key: StatMatchesPlayed, Min: 50},
		}}},
	},
	{
		ID: "variety_master", Name: "Maestro de la Variedad",
		Description: "Gana 3 partidos en cada categoría",
		Icon:        "🎨", Category: models.BadgeCategorySpecial, Rarity: models.RarityEpic, Points: 500,
		Requirements: []Requirement{Compound{Requirements: []Requirement{
			Numeric{Key: StatReyMesaWins, Min: 3},
			Numeric{Key: StatTorneoWins, Min: 3},
			Numeric{Key: StatLigaGruposWins, Min: 3},
			Numeric{Key: StatLigaFinalesWins, Min: 3},
		}}},
	},

	// Secret badges: evaluated like any other, hidden from listings until earned.
	{
		ID: "lucky_streak", Name: "Racha Afortunada",
		Description: "Gana 7 partidos consecutivos",
		Icon:        "🍀", Category: models.BadgeCategoryStreak, Rarity: models.RarityEpic, Points: 600, Secret: true,
		Requirements: []Requirement{Numeric{Key: StatWinStreak, Min: 7}},
	},
	{
		ID: "night_grinder", Name: "Incansable",
		Description: "Juega 20 partidos en los últimos 30 días",
		Icon:        "🦉", Category: models.BadgeCategoryDedicated, Rarity: models.RarityRare, Points: 400, Secret: true,
		Requirements: []Requirement{Numeric{Key: StatMatches30Days, Min: 20}},
	},
}

// All returns the full catalog, secrets included.
func All() []Badge {
	return badges
}

// Public returns the catalog without secret badges.
func Public() []Badge {
	public := make([]Badge, 0, len(badges))
	for _, b := range badges {
		if !b.Secret {
			public = append(public, b)
		}
	}
	return public
}

// ByID looks a badge up by its catalog id.
func ByID(id string) (Badge, bool) {
	for _, b := range badges {
		if b.ID == id {
			return b, true
		}
	}
	return Badge{}, false
}

// Level computes the gamification level for an experience total.
func Level(experience int) int {
	if experience < 0 {
		experience = 0
	}
	return int(math.Floor(math.Sqrt(float64(experience)/100))) + 1
}

// NextLevelExp is the experience needed to reach the next level.
func NextLevelExp(level int) int {
	return level * level * 100
}

var levelTitles = []struct {
	Level int
	Title string
}{
	{50, "Dios del Billar"},
	{30, "Leyenda"},
	{25, "Maestro"},
	{20, "Experto"},
	{15, "Competidor"},
	{10, "Jugador"},
	{5, "Aprendiz"},
}

// TitleForLevel maps a level to its display title.
func TitleForLevel(level int) string {
	for _, entry := range levelTitles {
		if level >= entry.Level {
			return entry.Title
		}
	}
	return "Novato"
}
