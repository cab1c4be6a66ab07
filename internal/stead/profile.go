package stead

import "github.com/steadling/farmcore/internal/content"

// Profile is the stead-wide progression state.
type Profile struct {
	XP             int `json:"xp"`
	ExtraLandPlots int `json:"extra_land_plots"`
}

// Sum folds the profile bonuses unlocked at the current xp.
func (p *Profile) Sum(cfg *content.Config) content.ProfileAdvancementSum {
	return content.ProfileSum(&cfg.Profile.Advancements, p.XP)
}

// Current is the highest profile rung reached.
func (p *Profile) Current(cfg *content.Config) *content.Advancement[content.ProfileAdvancementKind] {
	return cfg.Profile.Advancements.Current(p.XP)
}

// Next is the rung the profile is working toward, nil at the top.
func (p *Profile) Next(cfg *content.Config) *content.Advancement[content.ProfileAdvancementKind] {
	return cfg.Profile.Advancements.Next(p.XP)
}

// IncreaseXP grants amt xp, returning the newly reached rung if the
// grant crossed one.
func (p *Profile) IncreaseXP(cfg *content.Config, amt int) *content.Advancement[content.ProfileAdvancementKind] {
	return cfg.Profile.Advancements.IncreaseXP(&p.XP, amt)
}

// LandCap is how many tiles this profile may hold: ladder grants plus
// plots redeemed from land unlock items.
func (p *Profile) LandCap(cfg *content.Config) int {
	return p.Sum(cfg).Land + p.ExtraLandPlots
}

// Progress reports where the profile sits on its ladder.
func (p *Profile) Progress(cfg *content.Config) content.LevelInfo {
	return cfg.Profile.Advancements.Progress(p.XP)
}
