package services

import (
	"github.com/Dosada05/matchday/models"
	"github.com/Dosada05/matchday/storage"
)

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func populateTeamLogoURLFunc(team *models.Team, uploader storage.FileUploader) {
	if team != nil && team.LogoKey != nil && *team.LogoKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*team.LogoKey)
		if url != "" {
			team.LogoURL = &url
		}
	}
}

func populateEventVideoURLFunc(event *models.MatchEvent, uploader storage.FileUploader) {
	if event != nil && event.VideoKey != nil && *event.VideoKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*event.VideoKey)
		if url != "" {
			event.VideoURL = &url
		}
	}
}

// uniqueIDs убирает нули и повторы, сохраняя порядок.
func uniqueIDs(ids ...int) []int {
	seen := make(map[int]bool, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if id <= 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
