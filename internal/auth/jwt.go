package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/campus-track/attendance-service/internal/models"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims is the JWT payload. It carries exactly what the handlers need to
// scope a request: the department for teachers, the own id and roll number
// for students.
type Claims struct {
	Role       models.UserRole `json:"role"`
	Name       string          `json:"name"`
	Department string          `json:"department,omitempty"`
	RollNo     string          `json:"roll_no,omitempty"`
	jwt.RegisteredClaims
}

// Issuer signs and validates HS256 tokens.
type Issuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewIssuer(secret, issuer string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), issuer: issuer, ttl: ttl}
}

// IssueTeacher issues a token for a teacher principal.
func (i *Issuer) IssueTeacher(t *models.Teacher) (string, time.Time, error) {
	return i.issue(Claims{
		Role:       models.RoleTeacher,
		Name:       t.Name,
		Department: t.Department,
	}, subjectID(t.ID))
}

// IssueStudent issues a token for a student principal.
func (i *Issuer) IssueStudent(s *models.Student) (string, time.Time, error) {
	return i.issue(Claims{
		Role:   models.RoleStudent,
		Name:   s.Name,
		RollNo: s.RollNo,
	}, subjectID(s.ID))
}

func (i *Issuer) issue(claims Claims, subject string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(i.ttl)

	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.New().String(),
		Issuer:    i.issuer,
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(exp),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, exp, nil
}

// Parse validates a token string and returns its claims.
func (i *Issuer) Parse(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if i.issuer != "" && claims.Issuer != i.issuer {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Principal converts validated claims into the request-scoped principal.
func (c *Claims) Principal() (*models.Principal, error) {
	id, err := parseSubject(c.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	p := &models.Principal{
		Role:    c.Role,
		Name:    c.Name,
		TokenID: c.ID,
	}
	if c.ExpiresAt != nil {
		p.ExpiresAt = c.ExpiresAt.Time
	}
	switch c.Role {
	case models.RoleTeacher:
		p.TeacherID = id
		p.Department = c.Department
	case models.RoleStudent:
		p.StudentID = id
		p.RollNo = c.RollNo
	default:
		return nil, ErrInvalidToken
	}
	return p, nil
}
