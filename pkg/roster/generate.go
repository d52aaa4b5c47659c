package roster

import (
	"math"
	"math/rand/v2"
	"strings"

	"github.com/matzehuels/seatchart/pkg/errors"
)

// Default height range for generated rosters, in inches.
const (
	DefaultMinHeight = 60.0
	DefaultMaxHeight = 78.0
)

// Limits for random rosters requested by users.
const (
	DefaultRandomCount = 40
	MaxRandomCount     = 500
)

// DefaultParts are the voice parts used when none are given.
var DefaultParts = []string{"Soprano", "Alto", "Tenor", "Bass"}

// ValidateRandomCount checks a user-requested roster size.
func ValidateRandomCount(n int) error {
	if n < 1 || n > MaxRandomCount {
		return errors.New(errors.ErrCodeInvalidInput, "count must be between 1 and %d, got %d", MaxRandomCount, n)
	}
	return nil
}

// GenerateOptions configures [Generate].
type GenerateOptions struct {
	Count int      // total members; ignored when Distribution is set
	Parts []string // parts to assign, cycled round-robin

	// Distribution optionally gives a member count per part, in Parts order.
	// Entries beyond len(Parts) wrap around.
	Distribution []int

	MinHeight, MaxHeight float64 // zero means the defaults
	Seed                 uint64  // zero picks a random seed
}

var upperNames = []string{
	"Mary", "Patricia", "Jennifer", "Linda", "Elizabeth", "Barbara", "Susan",
	"Jessica", "Sarah", "Karen", "Emma", "Ava", "Sophia", "Isabella", "Mia",
	"Charlotte", "Amelia", "Harper", "Evelyn", "Abigail", "Emily", "Ella",
	"Madison", "Scarlett", "Victoria", "Grace", "Chloe", "Lily", "Hannah",
	"Natalie", "Zoe", "Leah", "Hazel", "Violet", "Aurora", "Savannah",
	"Audrey", "Brooklyn", "Bella", "Claire", "Lucy", "Anna", "Caroline",
}

var lowerNames = []string{
	"James", "John", "Robert", "Michael", "William", "David", "Richard",
	"Joseph", "Thomas", "Charles", "Oliver", "Elijah", "Lucas", "Mason",
	"Logan", "Alexander", "Ethan", "Jacob", "Liam", "Noah", "Aiden",
	"Benjamin", "Henry", "Sebastian", "Jack", "Daniel", "Matthew", "Owen",
	"Ryan", "Nathan", "Connor", "Andrew", "Isaac", "Joshua", "Dylan",
	"Luke", "Gabriel", "Anthony", "Christian", "Jonathan", "Samuel", "Eric",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
	"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez",
	"Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
	"Lee", "Perez", "Thompson", "White", "Harris", "Sanchez", "Clark",
	"Ramirez", "Lewis", "Robinson", "Walker", "Young", "Allen", "King",
	"Wright", "Scott", "Torres", "Nguyen", "Hill", "Flores", "Green",
}

// Generate builds a random roster. Heights are uniform in the configured
// range and rounded to the nearest half inch. The same non-zero Seed always
// yields the same roster.
func Generate(opts GenerateOptions) []Member {
	if len(opts.Parts) == 0 {
		return nil
	}
	lo, hi := opts.MinHeight, opts.MaxHeight
	if lo == 0 && hi == 0 {
		lo, hi = DefaultMinHeight, DefaultMaxHeight
	}
	if hi < lo {
		lo, hi = hi, lo
	}
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	next := func(part string) Member {
		names := lowerNames
		if isUpperPart(part) {
			names = upperNames
		}
		name := names[rng.IntN(len(names))] + " " + lastNames[rng.IntN(len(lastNames))]
		h := lo + rng.Float64()*(hi-lo)
		return Member{Name: name, Part: part, Height: math.Round(h*2) / 2}
	}

	var members []Member
	if len(opts.Distribution) > 0 {
		for i, n := range opts.Distribution {
			part := opts.Parts[i%len(opts.Parts)]
			for range n {
				members = append(members, next(part))
			}
		}
		return members
	}
	for i := range opts.Count {
		members = append(members, next(opts.Parts[i%len(opts.Parts)]))
	}
	return members
}

func isUpperPart(part string) bool {
	p := strings.ToLower(part)
	for _, s := range []string{"soprano", "alto", "mezzo"} {
		if strings.Contains(p, s) {
			return true
		}
	}
	return false
}
