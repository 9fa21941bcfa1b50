package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_MixOutput_roundTrip(t *testing.T) {
	for m := Headphone1; m <= MixCallMe3; m++ {
		parsed, err := ParseMixOutput(m.String())
		assert.NoErrorf(t, err, "parsing %q", m.String())
		assert.Equal(t, m, parsed)
	}
}

func Test_Source_roundTrip(t *testing.T) {
	for s := SrcCombo1; s <= SrcCallMe3; s++ {
		parsed, err := ParseSource(s.String())
		assert.NoErrorf(t, err, "parsing %q", s.String())
		assert.Equal(t, s, parsed)
	}
}

func Test_Fader_roundTrip(t *testing.T) {
	for f := Physical1; f <= Virtual3; f++ {
		parsed, err := ParseFader(f.String())
		assert.NoErrorf(t, err, "parsing %q", f.String())
		assert.Equal(t, f, parsed)
	}
}

func Test_ParseMixOutput_aliasesAndCase(t *testing.T) {
	m, err := ParseMixOutput("  HP1 ")
	assert.NoError(t, err)
	assert.Equal(t, Headphone1, m)
}

func Test_ParseSource_unknown(t *testing.T) {
	_, err := ParseSource("not-a-source")
	assert.Error(t, err)
}

func Test_ParseFader_numericAlias(t *testing.T) {
	f, err := ParseFader("3")
	assert.NoError(t, err)
	assert.Equal(t, Physical3, f)
}

func Test_Source_IsCallMe(t *testing.T) {
	assert.True(t, SrcCallMe1.IsCallMe())
	assert.True(t, SrcCallMe2.IsCallMe())
	assert.True(t, SrcCallMe3.IsCallMe())
	assert.False(t, SrcCombo1.IsCallMe())
}

func Test_MixOutputByIndex(t *testing.T) {
	m, ok := MixOutputByIndex(10)
	assert.True(t, ok)
	assert.Equal(t, Headphone1, m)

	_, ok = MixOutputByIndex(255)
	assert.False(t, ok)
}

func Test_SourceByIndex_excludesCallMe(t *testing.T) {
	// Index 1 belongs to SrcCallMe1 in sourceIndex, so the regular lookup
	// must not resolve it.
	_, ok := SourceByIndex(1)
	assert.False(t, ok)

	src, ok := SourceByIndex(14)
	assert.True(t, ok)
	assert.Equal(t, SrcBluetooth, src)
}

func Test_SourceByCallMeIndex(t *testing.T) {
	src, ok := SourceByCallMeIndex(2)
	assert.True(t, ok)
	assert.Equal(t, SrcCallMe2, src)

	_, ok = SourceByCallMeIndex(4)
	assert.False(t, ok)
}

func Test_FaderByIndex(t *testing.T) {
	f, ok := FaderByIndex(0)
	assert.True(t, ok)
	assert.Equal(t, Physical1, f)
}

func Test_LoadAliasOverlay_rebindsAndExtendsNames(t *testing.T) {
	t.Cleanup(func() { LoadAliasOverlay(Config{}) })

	LoadAliasOverlay(Config{
		MixAliases:    map[string]string{"studio": "headphone2", "spk": "headphone3"},
		SourceAliases: map[string]string{"host-mic": "combo1"},
		FaderAliases:  map[string]string{"host": "physical1"},
	})

	m, err := ParseMixOutput("studio")
	assert.NoError(t, err)
	assert.Equal(t, Headphone2, m)

	// An overlay entry rebinds a built-in alias ("spk" is Speaker by default).
	rebound, err := ParseMixOutput("spk")
	assert.NoError(t, err)
	assert.Equal(t, Headphone3, rebound)

	s, err := ParseSource("host-mic")
	assert.NoError(t, err)
	assert.Equal(t, SrcCombo1, s)

	f, err := ParseFader("host")
	assert.NoError(t, err)
	assert.Equal(t, Physical1, f)

	// Built-in aliases still resolve once an overlay is loaded.
	m2, err := ParseMixOutput("hp1")
	assert.NoError(t, err)
	assert.Equal(t, Headphone1, m2)
}

func Test_LoadAliasOverlay_emptyOverlayLeavesBuiltinsWorking(t *testing.T) {
	t.Cleanup(func() { LoadAliasOverlay(Config{}) })
	LoadAliasOverlay(Config{})

	m, err := ParseMixOutput("hp1")
	assert.NoError(t, err)
	assert.Equal(t, Headphone1, m)
}
