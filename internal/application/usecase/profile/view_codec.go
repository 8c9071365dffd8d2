package profile

import (
	"encoding/json"

	"github.com/creatorloop/creatorloop-api/internal/domain/section"
)

// UnmarshalJSON restores the tagged content union from a cached profile
// entry: the payload is decoded against the view's section type.
func (v *SectionView) UnmarshalJSON(data []byte) error {
	type alias SectionView
	aux := struct {
		*alias
		Content json.RawMessage `json:"content,omitempty"`
	}{alias: (*alias)(v)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(aux.Content) > 0 {
		content, err := section.UnmarshalContent(v.Type, aux.Content)
		if err != nil {
			return err
		}
		v.Content = content
	}
	return nil
}
