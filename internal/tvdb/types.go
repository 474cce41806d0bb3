package tvdb

// Wire types for the TheTVDB v4 API. Responses arrive wrapped in an
// envelope carrying a status string and, on list endpoints, page links.

type loginRequest struct {
	APIKey string `json:"apikey"`
	PIN    string `json:"pin,omitempty"`
}

type loginResponse struct {
	Status string `json:"status"`
	Data   struct {
		Token string `json:"token"`
	} `json:"data"`
}

type seriesStatus struct {
	Name string `json:"name"`
}

type seriesData struct {
	ID     int64        `json:"id"`
	Name   string       `json:"name"`
	Status seriesStatus `json:"status"`
}

type seriesResponse struct {
	Status string     `json:"status"`
	Data   seriesData `json:"data"`
}

type episodeData struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Number       int    `json:"number"`
	SeasonNumber int    `json:"seasonNumber"`
}

type episodePageResponse struct {
	Status string `json:"status"`
	Data   struct {
		Episodes []episodeData `json:"episodes"`
	} `json:"data"`
	Links pageLinks `json:"links"`
}

// pageLinks carries pagination cursors. Next is empty on the last page.
type pageLinks struct {
	Prev       string `json:"prev"`
	Self       string `json:"self"`
	Next       string `json:"next"`
	TotalItems int    `json:"total_items"`
}
