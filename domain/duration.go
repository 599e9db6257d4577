package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Duration serializes as serde's default shape for a plain Rust
// std::time::Duration field — {"secs": u64, "nanos": u32} — matching
// original_source's request.rs/response.rs, which derive Serialize on
// Duration fields with no custom serializer. It lives here rather than in
// wire so both domain's own wire-facing structs (Statistics, PlayerResult)
// and the wire package's payload structs can share one definition without
// an import cycle (wire already imports domain).
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	td := time.Duration(d)
	secs := uint64(td / time.Second)
	nanos := uint32(td % time.Second)
	return json.Marshal(struct {
		Secs  uint64 `json:"secs"`
		Nanos uint32 `json:"nanos"`
	}{secs, nanos})
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw struct {
		Secs  uint64 `json:"secs"`
		Nanos uint32 `json:"nanos"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("domain: decode duration: %w", err)
	}
	*d = Duration(time.Duration(raw.Secs)*time.Second + time.Duration(raw.Nanos))
	return nil
}
