package turn

import (
	"github.com/whitehorse-dev/sarvam-auto-talker/internal/config"
	"github.com/whitehorse-dev/sarvam-auto-talker/internal/ports"
)

// RoleResolver maps a speaker role to its language pair. The pair is fixed
// configuration, never inferred from the audio: speaker A talks Hindi and
// hears English, speaker B the inverse.
type RoleResolver struct {
	hindi   string
	english string
}

func NewRoleResolver(cfg config.Config) RoleResolver {
	return RoleResolver{
		hindi:   cfg.DefaultHindiLang,
		english: cfg.DefaultEnglishLang,
	}
}

func (r RoleResolver) Resolve(role string) (ports.LanguagePair, error) {
	switch role {
	case "A":
		return ports.LanguagePair{Source: r.hindi, Target: r.english}, nil
	case "B":
		return ports.LanguagePair{Source: r.english, Target: r.hindi}, nil
	}
	return ports.LanguagePair{}, invalidInput("speaker_role must be 'A' or 'B'")
}
