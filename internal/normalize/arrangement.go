package normalize

import "strings"

type WorkArrangement string

const (
	Remote    WorkArrangement = "Remote"
	Hybrid    WorkArrangement = "Hybrid"
	OnSite    WorkArrangement = "On-site"
	Freelance WorkArrangement = "Freelance"
)

type arrangementKeywords struct {
	arrangement WorkArrangement
	keywords    []string
}

// Hybrid is checked first: "Remote / Hybrid" style labels mean hybrid.
var arrangementOrder = []arrangementKeywords{
	{Hybrid, []string{"hybrid", "híbrido", "hibrido", "hybride"}},
	{Remote, []string{
		"remote", "telecommute", "work from home", "wfh",
		"remoto", "remota", "teletrabajo", "télétravail", "teletravail",
		"homeoffice", "home office", "fernarbeit", "à distance", "a distancia",
	}},
	{OnSite, []string{
		"on-site", "onsite", "on site", "in-office", "in office", "office-based",
		"presencial", "vor ort", "sur site", "présentiel", "presentiel",
	}},
	{Freelance, []string{
		"freelance", "freelancer", "contractor", "contract",
		"freiberuflich", "autónomo", "autonomo", "indépendant",
	}},
}

// WorkArrangementOf maps free text to a work arrangement by keyword.
func WorkArrangementOf(text string) (WorkArrangement, bool) {
	lower := strings.ToLower(CleanText(text))
	if lower == "" {
		return "", false
	}
	for _, group := range arrangementOrder {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				return group.arrangement, true
			}
		}
	}
	return "", false
}

// WorkArrangementFromRemoteFlag handles boards that publish an is-remote boolean.
func WorkArrangementFromRemoteFlag(remote bool) (WorkArrangement, bool) {
	if !remote {
		return "", false
	}
	return Remote, true
}
