package models

// Domain is a line of business a client operates in.
type Domain struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// domainNames is ordered; a name's 1-based position is its permanent id.
// Append new domains at the end, never reorder or remove.
var domainNames = [...]string{
	"Banking & Financial Services",
	"Insurance",
	"Healthcare",
	"Pharmaceuticals & Life Sciences",
	"Retail & E-Commerce",
	"Telecommunications",
	"Government & Public Sector",
	"Energy & Utilities",
	"Manufacturing",
	"Automotive",
	"Transportation & Logistics",
	"Media & Entertainment",
	"Education",
	"Hospitality & Travel",
	"Information Technology",
	"Real Estate",
	"Aerospace & Defense",
	"Consulting",
}

// Domains returns a fresh copy of the registry.
func Domains() []Domain {
	out := make([]Domain, len(domainNames))
	for i, name := range domainNames {
		out[i] = Domain{ID: i + 1, Name: name}
	}
	return out
}

func DomainByID(id int) (Domain, bool) {
	if id < 1 || id > len(domainNames) {
		return Domain{}, false
	}
	return Domain{ID: id, Name: domainNames[id-1]}, true
}
