package speech

import (
	"fmt"

	"github.com/teslashibe/go-museumbot/pkg/worldmap"
)

// Canned bilingual texts for the interaction flow. These are the generic
// fallbacks used when the prompt catalog has no entry for a POI.

// Thinking is spoken while the AI responder is working on an answer.
func Thinking(lang string) string {
	if lang == "ZH" {
		return "让我想一想..."
	}
	return "Let me think for a bit..."
}

// GenericDeparture is spoken before a route when no POI-specific prompt exists.
func GenericDeparture(lang string) string {
	if lang == "ZH" {
		return "好的，我们出发吧！"
	}
	return "Okay, let's go!"
}

// LanguageSet confirms a language change.
func LanguageSet(lang string) string {
	if lang == "ZH" {
		return "语言已设定"
	}
	return "Language set."
}

// Apology is spoken when the AI responder is unavailable.
func Apology(lang string) string {
	if lang == "ZH" {
		return "抱歉，我现在无法访问知识库。请稍后再试。"
	}
	return "I'm sorry, but I don't have access to the knowledge base right now. Please try again later."
}

// ComposeArrival builds a generic arrival announcement from the POI record.
func ComposeArrival(poi worldmap.POI, lang string) string {
	if lang == "ZH" {
		return fmt.Sprintf("我们已到达%s。%s", poi.Name.ZH, poi.Description.ZH)
	}
	return fmt.Sprintf("We have arrived at %s. %s", poi.Name.EN, poi.Description.EN)
}
