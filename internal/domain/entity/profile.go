package entity

import (
	"time"

	"github.com/google/uuid"
)

// Profile is an aggregate root: at most one per user, holding the
// embedded experience and education collections. Experience and
// Education entries cannot outlive their parent Profile.
type Profile struct {
	ID             string       `json:"id"`
	UserID         string       `json:"user_id"`
	Handle         string       `json:"handle"`
	Company        string       `json:"company,omitempty"`
	Website        string       `json:"website,omitempty"`
	Location       string       `json:"location,omitempty"`
	Bio            string       `json:"bio,omitempty"`
	Status         string       `json:"status,omitempty"`
	GithubUsername string       `json:"github_username,omitempty"`
	Skills         []string     `json:"skills"`
	Social         SocialLinks  `json:"social"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// SocialLinks is a fixed set of platform URLs; unknown platforms are
// rejected at binding time, not stored.
type SocialLinks struct {
	Youtube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// Experience is an embedded sub-entity owned exclusively by its Profile.
type Experience struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location,omitempty"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
}

// Education is an embedded sub-entity owned exclusively by its Profile.
type Education struct {
	ID           string     `json:"id"`
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"field_of_study"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `json:"description,omitempty"`
}

// AddExperience assigns a fresh id and prepends the entry so the
// collection stays newest-first by insertion.
func (p *Profile) AddExperience(exp Experience) Experience {
	exp.ID = uuid.NewString()
	p.Experience = append([]Experience{exp}, p.Experience...)
	return exp
}

// RemoveExperience deletes the entry with the given id. It reports
// false when no entry matches; callers must treat that as an error
// rather than a silent no-op.
func (p *Profile) RemoveExperience(id string) bool {
	for i, exp := range p.Experience {
		if exp.ID == id {
			p.Experience = append(p.Experience[:i], p.Experience[i+1:]...)
			return true
		}
	}
	return false
}

// AddEducation assigns a fresh id and prepends the entry.
func (p *Profile) AddEducation(edu Education) Education {
	edu.ID = uuid.NewString()
	p.Education = append([]Education{edu}, p.Education...)
	return edu
}

// RemoveEducation deletes the entry with the given id, reporting
// whether a match was found.
func (p *Profile) RemoveEducation(id string) bool {
	for i, edu := range p.Education {
		if edu.ID == id {
			p.Education = append(p.Education[:i], p.Education[i+1:]...)
			return true
		}
	}
	return false
}
