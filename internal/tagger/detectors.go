package tagger

import "regexp"

// pattern pairs a compiled expression with the confidence a match earns.
// Exact phrases carry higher confidence than looser structural patterns.
type pattern struct {
	re         *regexp.Regexp
	confidence float64
}

func phrase(confidence float64, literal string) pattern {
	return pattern{re: regexp.MustCompile(regexp.QuoteMeta(literal)), confidence: confidence}
}

func expr(confidence float64, source string) pattern {
	return pattern{re: regexp.MustCompile(source), confidence: confidence}
}

// detector recognizes one mechanic tag in lowercased oracle text. Each
// detector emits at most one tag candidate per card; the first matching
// pattern (highest confidence listed first) wins.
type detector struct {
	tag      string
	priority int // base priority 1-10, how central the mechanic usually is
	patterns []pattern
}

// detectorBattery is the fixed, ordered battery of free-text detectors run
// over every card. Order determines tag order in the profile before priority
// sorting; it never affects which tags are emitted.
var detectorBattery = []detector{
	{
		tag:      "mechanic_token_creation",
		priority: 6,
		patterns: []pattern{
			expr(0.9, `create[sd]? (?:a|an|one|two|three|four|x|that many)[^.]* token`),
			phrase(0.7, "token"),
		},
	},
	{
		tag:      "mechanic_token_payoff",
		priority: 7,
		patterns: []pattern{
			expr(0.9, `whenever (?:a|one or more|you create a)[^.]* tokens? (?:enters?|are created|is created)`),
			expr(0.85, `(?:creatures? you control|each creature token) (?:get|gets)[^.]*\+`),
			expr(0.8, `for each (?:creature )?token you control`),
		},
	},
	{
		tag:      "mechanic_token_doubling",
		priority: 8,
		patterns: []pattern{
			expr(0.95, `create (?:twice that many|that many of those tokens|those tokens instead)`),
			expr(0.9, `would create one or more tokens[^.]* instead`),
		},
	},
	{
		tag:      "mechanic_treasure",
		priority: 5,
		patterns: []pattern{
			phrase(0.9, "treasure token"),
			phrase(0.85, "create a treasure"),
		},
	},
	{
		tag:      "mechanic_ramp",
		priority: 6,
		patterns: []pattern{
			expr(0.9, `add \{[wubrgc0-9]\}`),
			expr(0.85, `add (?:one|two|three) mana`),
			expr(0.8, `add [^.]*mana of any (?:one )?color`),
		},
	},
	{
		tag:      "mechanic_mana_rock",
		priority: 5,
		patterns: []pattern{
			expr(0.9, `\{t\}: add`),
		},
	},
	{
		tag:      "mechanic_land_search",
		priority: 6,
		patterns: []pattern{
			expr(0.9, `search your library for (?:a|up to \w+)[^.]* land`),
		},
	},
	{
		tag:      "mechanic_extra_lands",
		priority: 6,
		patterns: []pattern{
			expr(0.9, `play (?:an additional land|two additional lands|any number of lands)`),
			expr(0.85, `put [^.]*land cards? (?:from your hand )?onto the battlefield`),
		},
	},
	{
		tag:      "mechanic_card_draw",
		priority: 6,
		patterns: []pattern{
			expr(0.9, `draw (?:a card|one card|two cards|three cards|x cards|that many cards|cards equal)`),
			expr(0.7, `draws? \w+ cards?`),
		},
	},
	{
		tag:      "mechanic_wheel",
		priority: 7,
		patterns: []pattern{
			expr(0.9, `each player (?:discards? (?:their|his or her) hand|shuffles? (?:their|his or her) hand)[^.]* draws? seven`),
			expr(0.85, `discards? their hand, then draws?`),
		},
	},
	{
		tag:      "mechanic_tutor",
		priority: 7,
		patterns: []pattern{
			expr(0.9, `search your library for (?:a|an|any) card`),
			expr(0.75, `search your library for (?:a|an)[^.]* card`),
		},
	},
	{
		tag:      "mechanic_cost_reduction",
		priority: 5,
		patterns: []pattern{
			expr(0.9, `spells? (?:you cast )?costs? \{?\d+\}? less to cast`),
			expr(0.8, `costs? [^.]*less to cast`),
		},
	},
	{
		tag:      "mechanic_removal_targeted",
		priority: 6,
		patterns: []pattern{
			expr(0.9, `destroy target (?:creature|artifact|enchantment|planeswalker|permanent|nonland permanent)`),
			expr(0.9, `exile target (?:creature|artifact|enchantment|planeswalker|permanent|nonland permanent)`),
			expr(0.8, `deals? \d+ damage to (?:target|any target)`),
		},
	},
	{
		tag:      "mechanic_board_wipe",
		priority: 7,
		patterns: []pattern{
			expr(0.95, `destroy all (?:creatures|artifacts|enchantments|permanents|nonland permanents)`),
			expr(0.95, `exile all (?:creatures|artifacts|enchantments|permanents|nonland permanents)`),
			expr(0.85, `deals? \d+ damage to each creature`),
			expr(0.85, `each player sacrifices [^.]*(?:creatures|permanents)`),
		},
	},
	{
		tag:      "mechanic_counterspell",
		priority: 6,
		patterns: []pattern{
			expr(0.95, `counter target (?:spell|noncreature spell|creature spell|activated ability|triggered ability)`),
			expr(0.8, `counter it unless`),
		},
	},
	{
		tag:      "mechanic_discard",
		priority: 5,
		patterns: []pattern{
			expr(0.9, `(?:target player|each opponent|that player) discards?`),
		},
	},
	{
		tag:      "mechanic_graveyard_hate",
		priority: 5,
		patterns: []pattern{
			expr(0.9, `exile (?:all cards from )?(?:target player's|each opponent's|all) graveyards?`),
			expr(0.85, `exile [^.]*from (?:a|target player's|an opponent's) graveyard`),
		},
	},
	{
		tag:      "mechanic_burn",
		priority: 5,
		patterns: []pattern{
			expr(0.9, `deals? \d+ damage to each opponent`),
			expr(0.8, `deals? (?:x|\d+) damage to (?:any target|target player|each player)`),
		},
	},
	{
		tag:      "mechanic_etb_trigger",
		priority: 5,
		patterns: []pattern{
			expr(0.9, `when(?:ever)? [^.]*enters(?: the battlefield)?,`),
		},
	},
	{
		tag:      "mechanic_death_trigger",
		priority: 6,
		patterns: []pattern{
			expr(0.9, `when(?:ever)? [^.]*dies,`),
			expr(0.85, `whenever a creature (?:you control )?dies`),
			expr(0.8, `is put into a graveyard from the battlefield`),
		},
	},
	{
		tag:      "mechanic_attack_trigger",
		priority: 5,
		patterns: []pattern{
			expr(0.9, `when(?:ever)? [^.]*attacks?,`),
		},
	},
	{
		tag:      "mechanic_combat_damage_trigger",
		priority: 6,
		patterns: []pattern{
			expr(0.9, `deals combat damage to a player`),
		},
	},
	{
		tag:      "mechanic_landfall",
		priority: 7,
		patterns: []pattern{
			phrase(0.95, "landfall"),
			expr(0.9, `whenever a land (?:you control )?enters`),
		},
	},
	{
		tag:      "mechanic_cast_trigger",
		priority: 6,
		patterns: []pattern{
			expr(0.9, `whenever you cast (?:a|an|your)[^.]* spell`),
		},
	},
	{
		tag:      "mechanic_sacrifice",
		priority: 6,
		patterns: []pattern{
			expr(0.9, `sacrifice (?:a|an|another|x|that many)[^.]*(?:creature|artifact|permanent|token)`),
			expr(0.8, `sacrifice [a-z ]+:`),
		},
	},
	{
		tag:      "mechanic_aristocrats_payoff",
		priority: 7,
		patterns: []pattern{
			expr(0.9, `whenever you sacrifice`),
			expr(0.85, `whenever [^.]*(?:creature|permanent) (?:you control )?(?:dies|is sacrificed)[^.]*(?:each opponent loses|you gain|draw)`),
		},
	},
	{
		tag:      "mechanic_graveyard_recursion",
		priority: 6,
		patterns: []pattern{
			expr(0.9, `return (?:target|a|up to \w+)[^.]* from your graveyard to your hand`),
		},
	},
	{
		tag:      "mechanic_reanimation",
		priority: 7,
		patterns: []pattern{
			expr(0.9, `return (?:target|a|up to \w+)[^.]* from (?:your|a) graveyard to the battlefield`),
			expr(0.85, `put (?:target|that)[^.]* from (?:your|a) graveyard onto the battlefield`),
		},
	},
	{
		tag:      "mechanic_self_mill",
		priority: 5,
		patterns: []pattern{
			expr(0.9, `mill \w+ cards?`),
			expr(0.85, `put the top \w+ cards? of your library into your graveyard`),
		},
	},
	{
		tag:      "mechanic_lifegain",
		priority: 4,
		patterns: []pattern{
			expr(0.9, `you gain \d+ life`),
			expr(0.8, `gain (?:x|that much) life`),
		},
	},
	{
		tag:      "mechanic_lifegain_payoff",
		priority: 7,
		patterns: []pattern{
			expr(0.9, `whenever you gain life`),
			expr(0.85, `if you (?:gained|have gained) life this turn`),
		},
	},
	{
		tag:      "mechanic_lifedrain",
		priority: 6,
		patterns: []pattern{
			expr(0.9, `each opponent loses \d+ life[^.]* you gain`),
			expr(0.85, `loses? \d+ life and you gain \d+ life`),
		},
	},
	{
		tag:      "mechanic_spellslinger_payoff",
		priority: 7,
		patterns: []pattern{
			expr(0.9, `whenever you cast (?:an instant or sorcery|a noncreature) spell`),
			expr(0.85, `instant and sorcery spells you cast`),
			phrase(0.8, "magecraft"),
		},
	},
	{
		tag:      "mechanic_copy_spell",
		priority: 7,
		patterns: []pattern{
			expr(0.9, `copy (?:target|that|it)[^.]*spell`),
			expr(0.85, `copy it[^.]* you may choose new targets`),
		},
	},
	{
		tag:      "mechanic_blink",
		priority: 6,
		patterns: []pattern{
			expr(0.9, `exile (?:target|another target|up to \w+)[^.]*, then return (?:it|them|that card) to the battlefield`),
			expr(0.85, `exile [^.]*return [^.]* to the battlefield under (?:its|their) owner`),
		},
	},
	{
		tag:      "mechanic_artifact_matters",
		priority: 6,
		patterns: []pattern{
			expr(0.9, `whenever (?:an|another) artifact (?:enters|you control)`),
			expr(0.85, `artifacts? you control (?:get|gets|have|gain)`),
			expr(0.8, `for each artifact you control`),
		},
	},
	{
		tag:      "mechanic_enchantment_matters",
		priority: 6,
		patterns: []pattern{
			expr(0.9, `whenever (?:an|another) enchantment enters`),
			expr(0.85, `enchantments? you control`),
			phrase(0.8, "constellation"),
		},
	},
	{
		tag:      "mechanic_equipment_matters",
		priority: 6,
		patterns: []pattern{
			expr(0.9, `equipped creature (?:gets|gains|has)`),
			expr(0.85, `(?:attach|equip)[^.]*equipment`),
			expr(0.8, `equipment you control`),
		},
	},
	{
		tag:      "mechanic_aura_matters",
		priority: 6,
		patterns: []pattern{
			expr(0.9, `enchanted creature (?:gets|gains|has)`),
			expr(0.85, `whenever (?:an|one or more) auras? (?:enters?|become)`),
			expr(0.8, `auras? you control`),
		},
	},
	{
		tag:      "mechanic_clone",
		priority: 5,
		patterns: []pattern{
			expr(0.9, `enters? (?:the battlefield )?as a copy of`),
			expr(0.85, `create a [^.]*cop(?:y|ies) of (?:target|that|it)`),
		},
	},
	{
		tag:      "mechanic_theft",
		priority: 5,
		patterns: []pattern{
			expr(0.9, `gain control of (?:target|that|enchanted)`),
		},
	},
	{
		tag:      "mechanic_untap",
		priority: 5,
		patterns: []pattern{
			expr(0.9, `untap (?:target|all|up to \w+|another target)[^.]*(?:creature|permanent|land|artifact)`),
			expr(0.8, `doesn't untap during`),
		},
	},
	{
		tag:      "mechanic_plus_one_counters",
		priority: 6,
		patterns: []pattern{
			expr(0.9, `\+1/\+1 counters?`),
		},
	},
	{
		tag:      "mechanic_proliferate",
		priority: 7,
		patterns: []pattern{
			phrase(0.95, "proliferate"),
		},
	},
	{
		tag:      "mechanic_counter_doubling",
		priority: 8,
		patterns: []pattern{
			expr(0.95, `twice that many [^.]*counters`),
			expr(0.9, `would (?:be placed|put) [^.]*counters? [^.]*instead`),
		},
	},
	{
		tag:      "mechanic_anthem",
		priority: 6,
		patterns: []pattern{
			expr(0.9, `creatures you control get \+`),
			expr(0.8, `other [a-z]+ creatures you control get \+`),
		},
	},
	{
		tag:      "mechanic_evasion_grant",
		priority: 5,
		patterns: []pattern{
			expr(0.9, `(?:target creature|creatures you control) (?:gains?|have|has) (?:flying|menace|trample|fear|intimidate|shadow)`),
			expr(0.85, `can't be blocked`),
		},
	},
	{
		tag:      "mechanic_protection",
		priority: 4,
		patterns: []pattern{
			expr(0.9, `(?:gains?|have|has) (?:hexproof|indestructible|protection from|shroud)`),
			expr(0.8, `prevent all (?:combat )?damage`),
		},
	},
	{
		tag:      "mechanic_overrun",
		priority: 7,
		patterns: []pattern{
			expr(0.9, `creatures you control get \+\d+/\+\d+[^.]*(?:trample|until end of turn)`),
		},
	},
	{
		tag:      "mechanic_extra_combat",
		priority: 8,
		patterns: []pattern{
			expr(0.95, `additional combat phase`),
			expr(0.9, `untap all creatures[^.]* additional combat`),
		},
	},
	{
		tag:      "mechanic_extra_turn",
		priority: 8,
		patterns: []pattern{
			expr(0.95, `take (?:an extra|two extra) turns?`),
		},
	},
	{
		tag:      "mechanic_mill_opponent",
		priority: 5,
		patterns: []pattern{
			expr(0.9, `(?:target player|each opponent) mills? \w+ cards?`),
			expr(0.85, `puts? the top \w+ cards? of (?:their|his or her) library into (?:their|his or her) graveyard`),
		},
	},
	{
		tag:      "mechanic_alt_win",
		priority: 9,
		patterns: []pattern{
			phrase(0.95, "you win the game"),
			phrase(0.95, "loses the game"),
		},
	},
	{
		tag:      "mechanic_tribal_payoff",
		priority: 7,
		patterns: []pattern{
			expr(0.9, `(?:other )?[a-z]+s you control (?:get \+|have|gain)`),
			expr(0.85, `whenever (?:a|another) [a-z]+ (?:you control )?enters`),
			expr(0.8, `for each [a-z]+ you control`),
		},
	},
	{
		tag:      "mechanic_group_hug",
		priority: 4,
		patterns: []pattern{
			expr(0.9, `each player (?:draws? a card|may draw)`),
		},
	},
	{
		tag:      "mechanic_stax",
		priority: 6,
		patterns: []pattern{
			expr(0.9, `(?:players|opponents) can't (?:cast|untap|draw|search|gain life)`),
			expr(0.85, `spells? (?:your opponents cast )?costs? \{?\d+\}? more to cast`),
		},
	},
}

// detection is a successful detector run.
type detection struct {
	tag        string
	priority   int
	confidence float64
	evidence   []string
}

const maxEvidenceSnippets = 3

// detect runs the detector against lowercased oracle text. The first matching
// pattern determines confidence; evidence collects up to three match snippets.
func (d *detector) detect(text string) (detection, bool) {
	for _, p := range d.patterns {
		matches := p.re.FindAllString(text, maxEvidenceSnippets)
		if len(matches) == 0 {
			continue
		}
		return detection{
			tag:        d.tag,
			priority:   d.priority,
			confidence: p.confidence,
			evidence:   matches,
		}, true
	}
	return detection{}, false
}
