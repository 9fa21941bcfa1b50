package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ParseControlMessage_legacyMute(t *testing.T) {
	cmds, err := ParseControlMessage([]byte("mute 1 1"))
	assert.NoError(t, err)
	assert.Equal(t, []RodeCommand{MuteCommand{Fader: Physical2, Mute: true}}, cmds)
}

func Test_ParseControlMessage_legacySource(t *testing.T) {
	cmds, err := ParseControlMessage([]byte("source 0 14"))
	assert.NoError(t, err)
	assert.Equal(t, []RodeCommand{SetSourceCommand{Fader: Physical1, Source: SrcBluetooth}}, cmds)
}

func Test_ParseControlMessage_legacyLevel(t *testing.T) {
	cmds, err := ParseControlMessage([]byte("level 0 32768"))
	assert.NoError(t, err)
	assert.Equal(t, []RodeCommand{SetLevelCommand{Fader: Physical1, Level: 32768}}, cmds)
}

func Test_ParseControlMessage_legacyTouch(t *testing.T) {
	cmds, err := ParseControlMessage([]byte("touch"))
	assert.NoError(t, err)
	assert.Equal(t, []RodeCommand{TouchCommand{}}, cmds)
}

func Test_ParseControlMessage_legacyMixLink(t *testing.T) {
	cmds, err := ParseControlMessage([]byte("mix_link 10 14"))
	assert.NoError(t, err)
	assert.Equal(t, []RodeCommand{MixCommand{Action: MixLink, Mix: Headphone1, Source: SrcBluetooth}}, cmds)
}

func Test_ParseControlMessage_legacyMixDisable(t *testing.T) {
	cmds, err := ParseControlMessage([]byte("mix_disable 10 14 3"))
	assert.NoError(t, err)
	assert.Equal(t, []RodeCommand{MixCommand{Action: MixDisable, Mix: Headphone1, Source: SrcBluetooth}}, cmds)
}

func Test_ParseControlMessage_legacyCallMeLink(t *testing.T) {
	cmds, err := ParseControlMessage([]byte("callme_link 10 2"))
	assert.NoError(t, err)
	assert.Equal(t, []RodeCommand{MixCommand{Action: MixLink, Mix: Headphone1, Source: SrcCallMe2}}, cmds)
}

func Test_ParseControlMessage_legacyMicType(t *testing.T) {
	cmds, err := ParseControlMessage([]byte("mic_type 0 -1"))
	assert.NoError(t, err)
	assert.Equal(t, []RodeCommand{SetMicTypeCommand{Fader: Physical1, MicType: MicTypeFromInt32(-1)}}, cmds)
}

func Test_ParseControlMessage_legacyUnknownVerb(t *testing.T) {
	_, err := ParseControlMessage([]byte("frobnicate 1 2"))
	assert.Error(t, err)
}

func Test_ParseControlMessage_legacyEmpty(t *testing.T) {
	_, err := ParseControlMessage([]byte("   "))
	assert.Error(t, err)
}

func Test_ParseControlMessage_typedTouch(t *testing.T) {
	cmds, err := ParseControlMessage([]byte(`{"type":"touch"}`))
	assert.NoError(t, err)
	assert.Equal(t, []RodeCommand{TouchCommand{}}, cmds)
}

func Test_ParseControlMessage_typedMix(t *testing.T) {
	cmds, err := ParseControlMessage([]byte(`{"type":"mix","action":"link","mix":"headphone1","source":"bluetooth"}`))
	assert.NoError(t, err)
	assert.Equal(t, []RodeCommand{MixCommand{Action: MixLink, Mix: Headphone1, Source: SrcBluetooth}}, cmds)
}

func Test_ParseControlMessage_typedFader_composition(t *testing.T) {
	muted := true
	source := "bluetooth"
	level := 0.5
	env := `{"type":"fader","fader":"physical1","muted":true,"source":"bluetooth","level":0.5}`
	_ = muted
	_ = source
	_ = level

	cmds, err := ParseControlMessage([]byte(env))
	assert.NoError(t, err)
	assert.Len(t, cmds, 3)
	assert.Equal(t, MuteCommand{Fader: Physical1, Mute: true}, cmds[0])
	assert.Equal(t, SetSourceCommand{Fader: Physical1, Source: SrcBluetooth}, cmds[1])
	assert.IsType(t, SetLevelCommand{}, cmds[2])
}

func Test_ParseControlMessage_typedFader_partial(t *testing.T) {
	cmds, err := ParseControlMessage([]byte(`{"type":"fader","fader":"physical1","muted":false}`))
	assert.NoError(t, err)
	assert.Equal(t, []RodeCommand{MuteCommand{Fader: Physical1, Mute: false}}, cmds)
}

func Test_ParseControlMessage_typedFader_micType(t *testing.T) {
	cmds, err := ParseControlMessage([]byte(`{"type":"fader","fader":"physical1","mic_type":2}`))
	assert.NoError(t, err)
	assert.Equal(t, []RodeCommand{SetMicTypeCommand{Fader: Physical1, MicType: MicTypeTRRS}}, cmds)
}

func Test_ParseControlMessage_invalidJSONAndLegacy(t *testing.T) {
	_, err := ParseControlMessage([]byte("{not json and not a known verb"))
	assert.Error(t, err)
}
