package models

import (
	"math"
	"strings"
	"time"
)

type Profile struct {
	UserID            string    `json:"userId"`
	Name              string    `json:"name"`
	Gender            string    `json:"gender"`
	Phone             string    `json:"phone"`
	College           string    `json:"college"`
	Degree            string    `json:"degree"`
	Branch            string    `json:"branch"`
	Year              string    `json:"year"`
	Bio               string    `json:"bio"`
	Skills            []string  `json:"skills"`
	Interests         []string  `json:"interests"`
	ProfileCompletion int       `json:"profileCompletion"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// Completion returns the share of required fields that are filled, in percent.
func (p *Profile) Completion() int {
	required := []string{p.Name, p.Gender, p.Phone, p.College, p.Degree, p.Branch, p.Year}

	filled := 0
	for _, v := range required {
		if strings.TrimSpace(v) != "" {
			filled++
		}
	}

	return int(math.Round(100 * float64(filled) / float64(len(required))))
}
