package speech

import (
	"encoding/json"
	"fmt"
	"os"
)

// Catalog maps prompt keys to pre-written announcement texts. Keys follow the
// pattern <kind>_<poi_id>_<lang>, e.g. "navigate_poi_2_en" or
// "arrival_poi_5_zh". Lookups that miss fall back to generic texts composed
// at call time.
type Catalog struct {
	prompts map[string]string
}

// NewCatalog creates an empty catalog; all lookups will miss and callers use
// the generic fallbacks.
func NewCatalog() *Catalog {
	return &Catalog{prompts: map[string]string{}}
}

// LoadCatalog reads a prompt catalog from a JSON object file. A missing file
// is not an error: the bot simply speaks generic prompts.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return NewCatalog(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("speech: read prompts %s: %w", path, err)
	}
	var prompts map[string]string
	if err := json.Unmarshal(data, &prompts); err != nil {
		return nil, fmt.Errorf("speech: decode prompts: %w", err)
	}
	return &Catalog{prompts: prompts}, nil
}

// Get returns the prompt for a key.
func (c *Catalog) Get(key string) (string, bool) {
	text, ok := c.prompts[key]
	return text, ok
}

// DepartureKey builds the catalog key for a navigation announcement.
func DepartureKey(poiID, lang string) string {
	return fmt.Sprintf("navigate_%s_%s", poiID, lower(lang))
}

// ArrivalKey builds the catalog key for an arrival announcement.
func ArrivalKey(poiID, lang string) string {
	return fmt.Sprintf("arrival_%s_%s", poiID, lower(lang))
}

func lower(lang string) string {
	if lang == "ZH" {
		return "zh"
	}
	return "en"
}
