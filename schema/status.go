package schema

import (
	"cmp"
	"fmt"
	"strings"
)

// Status is implemented by every compatibility lattice. The underlying integer is the
// rank of the status: a higher rank is a better status and UNKNOWN always ranks -1.
type Status interface {
	~int
	String() string
}

// Status lattices, one per compatibility dimension.
type (
	// EmulationStatus represents how well the emulator runs a game.
	EmulationStatus int

	// VideoStatus represents how well a monitor can display a game.
	VideoStatus int

	// ControlsStatus represents how well a control panel can play a game.
	ControlsStatus int

	// OverallStatus is the common lattice every dimension is mapped onto.
	OverallStatus int
)

// Emulation statuses ordered by rank.
const (
	EmulationUnknown EmulationStatus = iota - 1
	EmulationPreliminary
	EmulationImperfect
	EmulationGood
)

// Video statuses ordered by rank.
const (
	VideoUnknown VideoStatus = iota - 1
	VideoUnsupported
	VideoBad
	VideoVFreqSlightlyOff
	VideoIntScale
	VideoNative
)

// Controls statuses ordered by rank.
const (
	ControlsUnknown ControlsStatus = iota - 1
	ControlsUnsupported
	ControlsBad
	ControlsOK
	ControlsGood
	ControlsNative
)

// Overall statuses ordered by rank.
const (
	OverallUnknown OverallStatus = iota - 1
	OverallUnsupported
	OverallBad
	OverallOK
	OverallGood
	OverallNative
)

// Names are indexed by rank+1.
var (
	emulationStatusNames = []string{"UNKNOWN", "PRELIMINARY", "IMPERFECT", "GOOD"}
	videoStatusNames     = []string{"UNKNOWN", "UNSUPPORTED", "BAD", "VFREQ_SLIGHTLY_OFF", "INT_SCALE", "NATIVE"}
	controlsStatusNames  = []string{"UNKNOWN", "UNSUPPORTED", "BAD", "OK", "GOOD", "NATIVE"}
)

func statusName(names []string, rank int) string {
	i := rank + 1
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("STATUS(%d)", rank)
	}
	return names[i]
}

// parseStatusName accepts names case-insensitively and treats '-' and ' ' like '_'.
func parseStatusName(kind string, names []string, s string) (int, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	for i, name := range names {
		if name == norm {
			return i - 1, nil
		}
	}
	return -1, fmt.Errorf("invalid %s status: %q", kind, s)
}

func (s EmulationStatus) String() string { return statusName(emulationStatusNames, int(s)) }
func (s VideoStatus) String() string     { return statusName(videoStatusNames, int(s)) }
func (s ControlsStatus) String() string  { return statusName(controlsStatusNames, int(s)) }
func (s OverallStatus) String() string   { return statusName(controlsStatusNames, int(s)) }

// ParseEmulationStatus parses a status name such as "IMPERFECT".
func ParseEmulationStatus(s string) (EmulationStatus, error) {
	rank, err := parseStatusName("emulation", emulationStatusNames, s)
	return EmulationStatus(rank), err
}

// ParseVideoStatus parses a status name such as "INT_SCALE".
func ParseVideoStatus(s string) (VideoStatus, error) {
	rank, err := parseStatusName("video", videoStatusNames, s)
	return VideoStatus(rank), err
}

// ParseControlsStatus parses a status name such as "GOOD".
func ParseControlsStatus(s string) (ControlsStatus, error) {
	rank, err := parseStatusName("controls", controlsStatusNames, s)
	return ControlsStatus(rank), err
}

// ParseOverallStatus parses a status name such as "OK".
func ParseOverallStatus(s string) (OverallStatus, error) {
	rank, err := parseStatusName("overall", controlsStatusNames, s)
	return OverallStatus(rank), err
}

// MarshalText renders the status by name so JSON and YAML carry readable values.
func (s EmulationStatus) MarshalText() ([]byte, error) { return []byte(s.String()), nil }
func (s VideoStatus) MarshalText() ([]byte, error)     { return []byte(s.String()), nil }
func (s ControlsStatus) MarshalText() ([]byte, error)  { return []byte(s.String()), nil }
func (s OverallStatus) MarshalText() ([]byte, error)   { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *EmulationStatus) UnmarshalText(text []byte) error {
	v, err := ParseEmulationStatus(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *VideoStatus) UnmarshalText(text []byte) error {
	v, err := ParseVideoStatus(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *ControlsStatus) UnmarshalText(text []byte) error {
	v, err := ParseControlsStatus(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *OverallStatus) UnmarshalText(text []byte) error {
	v, err := ParseOverallStatus(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Rank returns the integer rank of the status.
func Rank[S Status](s S) int {
	return int(s)
}

// IsKnown reports whether the status is anything other than UNKNOWN.
func IsKnown[S Status](s S) bool {
	return int(s) >= 0
}

// CompareStatus orders two statuses by rank.
func CompareStatus[S Status](a, b S) int {
	return cmp.Compare(int(a), int(b))
}

// MinStatus returns the lowest ranked status. UNKNOWN wins over every known status.
func MinStatus[S Status](first S, rest ...S) S {
	out := first
	for _, s := range rest {
		if s < out {
			out = s
		}
	}
	return out
}

// MaxStatus returns the highest ranked status.
func MaxStatus[S Status](first S, rest ...S) S {
	out := first
	for _, s := range rest {
		if s > out {
			out = s
		}
	}
	return out
}

// MinStatusOr returns the lowest status of the list, or fallback when the list is empty.
func MinStatusOr[S Status](statuses []S, fallback S) S {
	if len(statuses) == 0 {
		return fallback
	}
	return MinStatus(statuses[0], statuses[1:]...)
}

// MaxStatusOr returns the highest status of the list, or fallback when the list is empty.
func MaxStatusOr[S Status](statuses []S, fallback S) S {
	if len(statuses) == 0 {
		return fallback
	}
	return MaxStatus(statuses[0], statuses[1:]...)
}

// ToOverall maps an emulation status onto the overall lattice.
func (s EmulationStatus) ToOverall() OverallStatus {
	switch s {
	case EmulationPreliminary:
		return OverallBad
	case EmulationImperfect:
		return OverallOK
	case EmulationGood:
		return OverallNative
	default:
		return OverallUnknown
	}
}

// ToOverall maps a video status onto the overall lattice.
func (s VideoStatus) ToOverall() OverallStatus {
	switch s {
	case VideoUnsupported:
		return OverallUnsupported
	case VideoBad:
		return OverallBad
	case VideoVFreqSlightlyOff:
		return OverallOK
	case VideoIntScale:
		return OverallGood
	case VideoNative:
		return OverallNative
	default:
		return OverallUnknown
	}
}

// ToOverall maps a controls status onto the overall lattice. The two share ranks.
func (s ControlsStatus) ToOverall() OverallStatus {
	if s < ControlsUnknown || s > ControlsNative {
		return OverallUnknown
	}
	return OverallStatus(s)
}

// AllOverallStatuses lists the overall lattice from worst to best.
var AllOverallStatuses = []OverallStatus{
	OverallUnknown, OverallUnsupported, OverallBad, OverallOK, OverallGood, OverallNative,
}
