package password

import (
	"time"

	"github.com/google/uuid"
	zxcvbn "github.com/nbutton23/zxcvbn-go"
	"golang.org/x/crypto/bcrypt"
)

// constant rules
const (
	MinLength = 8
	MaxLength = 64
)

// Password object
type Password struct {
	Kind      Kind      `json:"-"`
	OwnerID   uuid.UUID `json:"-"`
	Hash      [60]byte  `json:"-"`
	CreatedAt time.Time `json:"-"`
}

// Validate validates password
func (p *Password) Validate() error {
	if p.OwnerID == uuid.Nil {
		return ErrNilOwnerID
	}

	if p.Hash[0] == 0 {
		return ErrEmptyPassword
	}

	return nil
}

// EvaluatePasswordStrength evaluates password's strength by checking length,
// complexity, characters used etc.
func EvaluatePasswordStrength(rawpass []byte, data []string) error {
	pl := len(rawpass)
	if pl < MinLength {
		return ErrShortPassword
	}

	if pl > MaxLength {
		return ErrLongPassword
	}

	// evaluating password's strength by the library's score
	// the score must be at least 3
	result := zxcvbn.PasswordStrength(string(rawpass), data)
	if result.Score < 3 {
		return ErrUnsafePassword
	}

	return nil
}

// New creates a hash from a given raw password byte slice
func New(k Kind, ownerID uuid.UUID, rawpass []byte, data []string) (p Password, err error) {
	if err = EvaluatePasswordStrength(rawpass, data); err != nil {
		return p, err
	}

	h, err := bcrypt.GenerateFromPassword(rawpass, bcrypt.DefaultCost)
	if err != nil {
		return p, err
	}

	p = Password{
		Kind:      k,
		OwnerID:   ownerID,
		CreatedAt: time.Now(),
	}

	copy(p.Hash[:], h)

	return p, nil
}

// Compare tests whether a given plaintext password is valid
func (p *Password) Compare(rawpass []byte) bool {
	return bcrypt.CompareHashAndPassword(p.Hash[:], rawpass) == nil
}
