package api

import "github.com/velalabs/vela/domain"

// MapContentItems converts wire content to domain items
func MapContentItems(dtos []contentDTO) []domain.ContentItem {
	items := make([]domain.ContentItem, 0, len(dtos))
	for _, d := range dtos {
		items = append(items, mapContentItem(d))
	}
	return items
}

func mapContentItem(d contentDTO) domain.ContentItem {
	return domain.ContentItem{
		ID:          d.ID,
		CreatorID:   d.CreatorID,
		CreatorName: d.CreatorName,
		Title:       d.Title,
		Description: d.Description,
		Media:       parseMediaType(d.MediaType),
		Visibility:  parseVisibility(d.Visibility),
		Category:    d.Category,
		Tags:        d.Tags,
		PriceCents:  d.PriceCents,
		DurationSec: d.DurationSec,
		Rating:      d.Rating,
		Stats: domain.Stats{
			Likes:    d.Stats.Likes,
			Views:    d.Stats.Views,
			Shares:   d.Stats.Shares,
			Comments: d.Stats.Comments,
		},
		ThumbURL:  d.ThumbURL,
		MediaURL:  d.MediaURL,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// MapCreators converts wire creators to domain creators
func MapCreators(dtos []creatorDTO) []domain.Creator {
	creators := make([]domain.Creator, 0, len(dtos))
	for _, d := range dtos {
		creators = append(creators, domain.Creator{
			ID:          d.ID,
			Handle:      d.Handle,
			DisplayName: d.DisplayName,
			Bio:         d.Bio,
			Verified:    d.Verified,
			Followers:   d.Followers,
			AvatarURL:   d.AvatarURL,
		})
	}
	return creators
}

// MapCategories converts wire categories to domain categories
func MapCategories(dtos []categoryDTO) []domain.Category {
	categories := make([]domain.Category, 0, len(dtos))
	for _, d := range dtos {
		categories = append(categories, domain.Category{
			ID:           d.ID,
			Slug:         d.Slug,
			Name:         d.Name,
			ContentCount: d.ContentCount,
		})
	}
	return categories
}

func parseMediaType(s string) domain.MediaType {
	switch s {
	case "video":
		return domain.MediaTypeVideo
	case "audio":
		return domain.MediaTypeAudio
	case "image":
		return domain.MediaTypeImage
	case "text":
		return domain.MediaTypeText
	case "live":
		return domain.MediaTypeLive
	default:
		return domain.MediaTypeVideo
	}
}

func mediaTypeString(t domain.MediaType) string {
	switch t {
	case domain.MediaTypeVideo:
		return "video"
	case domain.MediaTypeAudio:
		return "audio"
	case domain.MediaTypeImage:
		return "image"
	case domain.MediaTypeText:
		return "text"
	case domain.MediaTypeLive:
		return "live"
	default:
		return "video"
	}
}

func parseVisibility(s string) domain.Visibility {
	switch s {
	case "followers":
		return domain.VisibilityFollowers
	case "premium":
		return domain.VisibilityPremium
	default:
		return domain.VisibilityPublic
	}
}

// mapFiltersOut converts domain filters to their wire form
func mapFiltersOut(f domain.SearchFilters) filtersDTO {
	dto := filtersDTO{
		Categories:     f.Categories,
		MinPriceCents:  f.MinPriceCents,
		MaxPriceCents:  f.MaxPriceCents,
		MinDurationSec: f.MinDurationSec,
		MaxDurationSec: f.MaxDurationSec,
		MinRating:      f.MinRating,
		VerifiedOnly:   f.VerifiedOnly,
		FreeOnly:       f.FreeOnly,
		Sort:           string(f.Sort),
	}
	for _, t := range f.MediaTypes {
		dto.MediaTypes = append(dto.MediaTypes, mediaTypeString(t))
	}
	return dto
}
