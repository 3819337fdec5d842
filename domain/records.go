package domain

// RecordVersion is the current serialization version of persisted records.
const RecordVersion = 1

// Preferences holds user-tunable playback and discovery settings
type Preferences struct {
	Autoplay            bool     // Start playback when an item scrolls into view
	DataSaver           bool     // Prefer low-bitrate media
	MatureContent       bool     // Include age-restricted content in discovery
	PreferredCategories []string // Category slugs boosted in the feed
}

// DefaultPreferences returns the preferences of a fresh install
func DefaultPreferences() Preferences {
	return Preferences{Autoplay: true}
}

// PreferencesRecord is the persisted form of Preferences. Fields whose
// default is not the zero value are pointers so that records written
// before the field existed still deserialize to the default.
type PreferencesRecord struct {
	Version             int      `json:"version"`
	Autoplay            *bool    `json:"autoplay,omitempty"`
	DataSaver           bool     `json:"dataSaver,omitempty"`
	MatureContent       bool     `json:"matureContent,omitempty"`
	PreferredCategories []string `json:"preferredCategories,omitempty"`
}

// NewPreferencesRecord builds the persisted form of p
func NewPreferencesRecord(p Preferences) PreferencesRecord {
	autoplay := p.Autoplay
	return PreferencesRecord{
		Version:             RecordVersion,
		Autoplay:            &autoplay,
		DataSaver:           p.DataSaver,
		MatureContent:       p.MatureContent,
		PreferredCategories: append([]string(nil), p.PreferredCategories...),
	}
}

// Prefs resolves the record into preferences, applying defaults for
// fields the stored form predates
func (r PreferencesRecord) Prefs() Preferences {
	p := DefaultPreferences()
	if r.Autoplay != nil {
		p.Autoplay = *r.Autoplay
	}
	p.DataSaver = r.DataSaver
	p.MatureContent = r.MatureContent
	if len(r.PreferredCategories) > 0 {
		p.PreferredCategories = append([]string(nil), r.PreferredCategories...)
	}
	return p
}

// ViewingRecord is the persisted viewing history, most recent first
type ViewingRecord struct {
	Version    int      `json:"version"`
	ContentIDs []string `json:"contentIds,omitempty"`
}

// HistoryRecord is the persisted search history, most recent first
type HistoryRecord struct {
	Version int      `json:"version"`
	Queries []string `json:"queries,omitempty"`
}

// FollowedRecord is the persisted set of followed creator IDs
type FollowedRecord struct {
	Version    int      `json:"version"`
	CreatorIDs []string `json:"creatorIds,omitempty"`
}

// EngagementRecord is the persisted set of liked and bookmarked
// content IDs
type EngagementRecord struct {
	Version    int      `json:"version"`
	Liked      []string `json:"liked,omitempty"`
	Bookmarked []string `json:"bookmarked,omitempty"`
}

// FiltersRecord is the persisted form of the active search filters
type FiltersRecord struct {
	Version int           `json:"version"`
	Filters SearchFilters `json:"filters"`
}

// ActiveFilters resolves the record, applying defaults for fields the
// stored form predates
func (r FiltersRecord) ActiveFilters() SearchFilters {
	f := r.Filters.Clone()
	if f.Sort == "" {
		f.Sort = SortRelevance
	}
	return f
}
