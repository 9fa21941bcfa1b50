package bridge

/*------------------------------------------------------------------
 *
 * Purpose:	Typed identifiers for mix outputs, sources, and faders,
 *		and the index tables the device's wire protocol expects.
 *
 * Description:	Three disjoint enumerations.  Source and MixOutput share
 *		numeric ranges but are never interchangeable - a Source
 *		index means something completely different to the device
 *		than a MixOutput index with the same value.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"strings"
)

// MixOutput is a destination bus (headphones, speaker, recording, USB,
// chat, call-me).
type MixOutput int

const (
	Headphone1 MixOutput = iota
	Headphone2
	Headphone3
	Headphone4
	Speaker
	Recording
	MixBluetooth
	MixUsb1
	MixChat
	MixUsb2
	MixCallMe1
	MixCallMe2
	MixCallMe3
)

var mixOutputIndex = map[MixOutput]byte{
	Headphone1:   10,
	Headphone2:   11,
	Headphone3:   12,
	Headphone4:   13,
	Speaker:      14,
	Recording:    15,
	MixBluetooth: 16,
	MixUsb1:      17,
	MixChat:      18,
	MixUsb2:      19,
	MixCallMe1:   20,
	MixCallMe2:   21,
	MixCallMe3:   22,
}

var mixOutputNames = map[MixOutput]string{
	Headphone1:   "headphone1",
	Headphone2:   "headphone2",
	Headphone3:   "headphone3",
	Headphone4:   "headphone4",
	Speaker:      "speaker",
	Recording:    "recording",
	MixBluetooth: "bluetooth",
	MixUsb1:      "usb1",
	MixChat:      "chat",
	MixUsb2:      "usb2",
	MixCallMe1:   "callme1",
	MixCallMe2:   "callme2",
	MixCallMe3:   "callme3",
}

// mixOutputOverlay, sourceOverlay, and faderOverlay hold operator-defined
// aliases loaded from a config overlay (see LoadAliasOverlay below),
// mapping an alias string to one of the canonical names in
// mixOutputAliases/sourceAliases/faderAliases below. They are consulted
// before the built-in tables so an overlay can both add new spellings and
// rebind existing ones.
var (
	mixOutputOverlay map[string]string
	sourceOverlay    map[string]string
	faderOverlay     map[string]string
)

// LoadAliasOverlay registers cfg's entity name aliases, replacing any
// previously loaded overlay. Called once at startup after the config
// overlay is read.
func LoadAliasOverlay(cfg Config) {
	mixOutputOverlay = cfg.MixAliases
	sourceOverlay = cfg.SourceAliases
	faderOverlay = cfg.FaderAliases
}

var mixOutputAliases = map[string]MixOutput{
	"headphone1": Headphone1, "hp1": Headphone1,
	"headphone2": Headphone2, "hp2": Headphone2,
	"headphone3": Headphone3, "hp3": Headphone3,
	"headphone4": Headphone4, "hp4": Headphone4,
	"speaker": Speaker, "spk": Speaker,
	"recording": Recording, "rec": Recording,
	"bluetooth": MixBluetooth, "bt": MixBluetooth,
	"usb1":    MixUsb1,
	"chat":    MixChat,
	"usb2":    MixUsb2,
	"callme1": MixCallMe1, "cm1": MixCallMe1,
	"callme2": MixCallMe2, "cm2": MixCallMe2,
	"callme3": MixCallMe3, "cm3": MixCallMe3,
}

// Index returns the device-protocol index for this mix output.
func (m MixOutput) Index() byte {
	return mixOutputIndex[m]
}

func (m MixOutput) String() string {
	if s, ok := mixOutputNames[m]; ok {
		return s
	}
	return fmt.Sprintf("MixOutput(%d)", int(m))
}

// ParseMixOutput resolves a human-typed name (case-insensitive) to a
// MixOutput. Aliases match the short forms an operator would type, checking
// the overlay loaded by LoadAliasOverlay before the built-in table.
func ParseMixOutput(s string) (MixOutput, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if canonical, ok := mixOutputOverlay[key]; ok {
		key = strings.ToLower(strings.TrimSpace(canonical))
	}
	m, ok := mixOutputAliases[key]
	if !ok {
		return 0, fmt.Errorf("unknown mix output: %s", s)
	}
	return m, nil
}

// MixOutputByIndex resolves a raw device-protocol index (as used by the
// legacy control-channel grammar) back to a MixOutput.
func MixOutputByIndex(index byte) (MixOutput, bool) {
	for m, i := range mixOutputIndex {
		if i == index {
			return m, true
		}
	}
	return 0, false
}

// Source is an audio input the mixer can route.
type Source int

const (
	SrcCombo1 Source = iota
	SrcCombo2
	SrcCombo3
	SrcCombo4
	SrcCombo1_2
	SrcCombo2_3
	SrcCombo3_4
	SrcUsb1
	SrcChat
	SrcUsb2
	SrcBluetooth
	SrcSoundPad
	SrcVirtualGame
	SrcVirtualMusic
	SrcVirtualA
	SrcVirtualB
	SrcCallMe1
	SrcCallMe2
	SrcCallMe3
)

// sourceIndex is the index used in the regular mix-prefix formula.
// CallMe sources return their callme_index (1, 2, 3) here; the mix
// command builders special-case them before this value is used as a
// regular mix-prefix operand (see mix.go).
var sourceIndex = map[Source]byte{
	SrcCombo1:       4,
	SrcCombo2:       5,
	SrcCombo3:       6,
	SrcCombo4:       7,
	SrcCombo1_2:     8,
	SrcCombo2_3:     9,
	SrcCombo3_4:     10,
	SrcUsb1:         11,
	SrcChat:         12,
	SrcUsb2:         13,
	SrcBluetooth:    14,
	SrcSoundPad:     15,
	SrcVirtualGame:  16,
	SrcVirtualMusic: 17,
	SrcVirtualA:     18,
	SrcVirtualB:     19,
	SrcCallMe1:      1,
	SrcCallMe2:      2,
	SrcCallMe3:      3,
}

var sourceNames = map[Source]string{
	SrcCombo1:       "combo1",
	SrcCombo2:       "combo2",
	SrcCombo3:       "combo3",
	SrcCombo4:       "combo4",
	SrcCombo1_2:     "combo1_2",
	SrcCombo2_3:     "combo2_3",
	SrcCombo3_4:     "combo3_4",
	SrcUsb1:         "usb1",
	SrcChat:         "chat",
	SrcUsb2:         "usb2",
	SrcBluetooth:    "bluetooth",
	SrcSoundPad:     "soundpad",
	SrcVirtualGame:  "virtualgame",
	SrcVirtualMusic: "virtualmusic",
	SrcVirtualA:     "virtuala",
	SrcVirtualB:     "virtualb",
	SrcCallMe1:      "callme1",
	SrcCallMe2:      "callme2",
	SrcCallMe3:      "callme3",
}

var sourceAliases = map[string]Source{
	"combo1": SrcCombo1, "mic1": SrcCombo1,
	"combo2": SrcCombo2, "mic2": SrcCombo2,
	"combo3": SrcCombo3, "mic3": SrcCombo3,
	"combo4": SrcCombo4, "mic4": SrcCombo4,
	"combo1_2": SrcCombo1_2, "combo12": SrcCombo1_2,
	"combo2_3": SrcCombo2_3, "combo23": SrcCombo2_3,
	"combo3_4": SrcCombo3_4, "combo34": SrcCombo3_4,
	"usb1":         SrcUsb1,
	"chat":         SrcChat,
	"usb2":         SrcUsb2,
	"bluetooth":    SrcBluetooth,
	"bt":           SrcBluetooth,
	"soundpad":     SrcSoundPad,
	"pad":          SrcSoundPad,
	"virtualgame":  SrcVirtualGame,
	"vgame":        SrcVirtualGame,
	"virtualmusic": SrcVirtualMusic,
	"vmusic":       SrcVirtualMusic,
	"virtuala":     SrcVirtualA,
	"va":           SrcVirtualA,
	"virtualb":     SrcVirtualB,
	"vb":           SrcVirtualB,
	"callme1":      SrcCallMe1, "cm1": SrcCallMe1,
	"callme2": SrcCallMe2, "cm2": SrcCallMe2,
	"callme3": SrcCallMe3, "cm3": SrcCallMe3,
}

// Index returns the source index used by the regular mix-prefix formula.
// For call-me sources this is the callme_index (1-3), not a regular
// source index - see IsCallMe and the mix command builders.
func (s Source) Index() byte {
	return sourceIndex[s]
}

// IsCallMe reports whether s is one of the three call-me guest channels,
// which use an alternate payload layout (see mix.go).
func (s Source) IsCallMe() bool {
	return s == SrcCallMe1 || s == SrcCallMe2 || s == SrcCallMe3
}

func (s Source) String() string {
	if n, ok := sourceNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Source(%d)", int(s))
}

// ParseSource resolves a human-typed name (case-insensitive) to a Source,
// checking the overlay loaded by LoadAliasOverlay before the built-in table.
func ParseSource(s string) (Source, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if canonical, ok := sourceOverlay[key]; ok {
		key = strings.ToLower(strings.TrimSpace(canonical))
	}
	v, ok := sourceAliases[key]
	if !ok {
		return 0, fmt.Errorf("unknown source: %s", s)
	}
	return v, nil
}

// SourceByIndex resolves a raw device-protocol index (as used by the
// legacy control-channel grammar's mix_link/mix_unlink/mix_disable verbs)
// back to a regular (non call-me) Source. The indices 1-3 stored for
// call-me sources are their call-me channel numbers, not regular source
// indices, and are never resolved here - use SourceByCallMeIndex instead.
func SourceByIndex(index byte) (Source, bool) {
	for s, i := range sourceIndex {
		if i == index && !s.IsCallMe() {
			return s, true
		}
	}
	return 0, false
}

// SourceByCallMeIndex resolves a call-me channel number (1, 2, or 3, as
// used by the legacy grammar's callme_link/callme_unlink verbs) to its
// Source.
func SourceByCallMeIndex(callMeIndex byte) (Source, bool) {
	switch callMeIndex {
	case 1:
		return SrcCallMe1, true
	case 2:
		return SrcCallMe2, true
	case 3:
		return SrcCallMe3, true
	default:
		return 0, false
	}
}

// Fader is a physical or virtual channel strip (9 total).
type Fader int

const (
	Physical1 Fader = iota
	Physical2
	Physical3
	Physical4
	Physical5
	Physical6
	Virtual1
	Virtual2
	Virtual3
)

var faderIndex = map[Fader]byte{
	Physical1: 0,
	Physical2: 1,
	Physical3: 2,
	Physical4: 3,
	Physical5: 4,
	Physical6: 5,
	Virtual1:  6,
	Virtual2:  7,
	Virtual3:  8,
}

var faderNames = map[Fader]string{
	Physical1: "physical1",
	Physical2: "physical2",
	Physical3: "physical3",
	Physical4: "physical4",
	Physical5: "physical5",
	Physical6: "physical6",
	Virtual1:  "virtual1",
	Virtual2:  "virtual2",
	Virtual3:  "virtual3",
}

var faderAliases = map[string]Fader{
	"physical1": Physical1, "p1": Physical1, "fader1": Physical1, "1": Physical1,
	"physical2": Physical2, "p2": Physical2, "fader2": Physical2, "2": Physical2,
	"physical3": Physical3, "p3": Physical3, "fader3": Physical3, "3": Physical3,
	"physical4": Physical4, "p4": Physical4, "fader4": Physical4, "4": Physical4,
	"physical5": Physical5, "p5": Physical5, "fader5": Physical5, "5": Physical5,
	"physical6": Physical6, "p6": Physical6, "fader6": Physical6, "6": Physical6,
	"virtual1": Virtual1, "v1": Virtual1, "vfader1": Virtual1,
	"virtual2": Virtual2, "v2": Virtual2, "vfader2": Virtual2,
	"virtual3": Virtual3, "v3": Virtual3, "vfader3": Virtual3,
}

// Index returns the device-protocol index for this fader.
func (f Fader) Index() byte {
	return faderIndex[f]
}

func (f Fader) String() string {
	if n, ok := faderNames[f]; ok {
		return n
	}
	return fmt.Sprintf("Fader(%d)", int(f))
}

// ParseFader resolves a human-typed name (case-insensitive) to a Fader,
// checking the overlay loaded by LoadAliasOverlay before the built-in table.
func ParseFader(s string) (Fader, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if canonical, ok := faderOverlay[key]; ok {
		key = strings.ToLower(strings.TrimSpace(canonical))
	}
	v, ok := faderAliases[key]
	if !ok {
		return 0, fmt.Errorf("unknown fader: %s", s)
	}
	return v, nil
}

// FaderByIndex resolves a raw device-protocol index (as used by the legacy
// control-channel grammar) back to a Fader.
func FaderByIndex(index byte) (Fader, bool) {
	for f, i := range faderIndex {
		if i == index {
			return f, true
		}
	}
	return 0, false
}
