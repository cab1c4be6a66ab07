package content

// ProfileAdvancementKind is the payload of one profile-ladder rung.
// Profiles only ever unlock land so far.
type ProfileAdvancementKind struct {
	Land int `json:"land,omitempty"`
}

// ProfileAdvancementSum folds profile bonuses; flat values add.
type ProfileAdvancementSum struct {
	Land int `json:"land"`
}

// ProfileLadder is the concrete ladder type carried by the profile
// archetype.
type ProfileLadder = AdvancementSet[ProfileAdvancementKind]

// ProfileSum folds the rungs unlocked at xp.
func ProfileSum(set *ProfileLadder, xp int) ProfileAdvancementSum {
	var sum ProfileAdvancementSum
	for _, a := range set.Unlocked(xp) {
		sum.Land += a.Kind.Land
	}
	return sum
}
