package domain

import "fmt"

// ObjectiveType is the variant tag of an Objective. It is the first segment of
// every ObjectiveID.
type ObjectiveType string

const (
	ObjectiveTypeCharacter ObjectiveType = "character"
	ObjectiveTypeChallenge ObjectiveType = "challenge"
	ObjectiveTypeBoss      ObjectiveType = "boss"
)

// IsValid returns true if the objective type is a known variant tag.
func (t ObjectiveType) IsValid() bool {
	switch t {
	case ObjectiveTypeCharacter, ObjectiveTypeChallenge, ObjectiveTypeBoss:
		return true
	default:
		return false
	}
}

// Character names a playable character (e.g. "isaac", "azazel").
type Character string

// ObjectiveKind names a per-character completion milestone (e.g. "moms-heart").
type ObjectiveKind string

// Challenge names a challenge run.
type Challenge string

// Boss names a boss whose defeat is an objective on its own.
type Boss string

// Difficulty is the difficulty a character objective was completed on.
type Difficulty string

const (
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

// IsValid returns true if the difficulty is a known value.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyNormal, DifficultyHard:
		return true
	default:
		return false
	}
}

// Difficulties lists every difficulty in catalog order.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyNormal, DifficultyHard}
}

// Objective is a player-achievable milestone. The set of variants is closed:
// CharacterObjective, ChallengeObjective and BossObjective. Objectives are
// comparable values; two objectives with equal fields are the same objective.
type Objective interface {
	Type() ObjectiveType
	ID() ObjectiveID
	String() string
	isObjective()
}

// CharacterObjective is completed by finishing a milestone with a character.
type CharacterObjective struct {
	Character  Character
	Kind       ObjectiveKind
	Difficulty Difficulty
}

// ChallengeObjective is completed by beating a challenge run.
type ChallengeObjective struct {
	Challenge Challenge
}

// BossObjective is completed by defeating a boss with any character.
type BossObjective struct {
	Boss Boss
}

func (CharacterObjective) isObjective() {}
func (ChallengeObjective) isObjective() {}
func (BossObjective) isObjective()      {}

func (CharacterObjective) Type() ObjectiveType { return ObjectiveTypeCharacter }
func (ChallengeObjective) Type() ObjectiveType { return ObjectiveTypeChallenge }
func (BossObjective) Type() ObjectiveType      { return ObjectiveTypeBoss }

func (o CharacterObjective) ID() ObjectiveID { return VisitObjective[ObjectiveID](o, objectiveEncoder{}) }
func (o ChallengeObjective) ID() ObjectiveID { return VisitObjective[ObjectiveID](o, objectiveEncoder{}) }
func (o BossObjective) ID() ObjectiveID      { return VisitObjective[ObjectiveID](o, objectiveEncoder{}) }

func (o CharacterObjective) String() string { return VisitObjective[string](o, objectiveRenderer{}) }
func (o ChallengeObjective) String() string { return VisitObjective[string](o, objectiveRenderer{}) }
func (o BossObjective) String() string      { return VisitObjective[string](o, objectiveRenderer{}) }

// ObjectiveVisitor handles every Objective variant. Implementations fail to
// compile when a variant is added and not handled.
type ObjectiveVisitor[R any] interface {
	Character(CharacterObjective) R
	Challenge(ChallengeObjective) R
	Boss(BossObjective) R
}

// VisitObjective dispatches o to the visitor method for its variant.
func VisitObjective[R any](o Objective, v ObjectiveVisitor[R]) R {
	switch obj := o.(type) {
	case CharacterObjective:
		return v.Character(obj)
	case ChallengeObjective:
		return v.Challenge(obj)
	case BossObjective:
		return v.Boss(obj)
	default:
		// isObjective is unexported, so no other implementation can exist.
		panic(fmt.Sprintf("domain: unknown objective variant %T", o))
	}
}

type objectiveRenderer struct{}

func (objectiveRenderer) Character(o CharacterObjective) string {
	return fmt.Sprintf("%s: %s (%s)", o.Character, o.Kind, o.Difficulty)
}

func (objectiveRenderer) Challenge(o ChallengeObjective) string {
	return fmt.Sprintf("challenge %s", o.Challenge)
}

func (objectiveRenderer) Boss(o BossObjective) string {
	return fmt.Sprintf("defeat %s", o.Boss)
}
