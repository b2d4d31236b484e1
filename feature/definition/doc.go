// Package definition loads the Input collection from a YAML definition file.
//
// A definition names the game and lists achievements and leaderboards:
//
//	gameId: 1234
//	title: Sonic the Hedgehog
//	achievements:
//	  - title: Green Hill
//	    description: Finish Green Hill Zone
//	    points: 5
//	    conditions: 0xH1234=1_0xH5678=2
//	leaderboards:
//	  - title: Speedrun
//	    type: FRAMES
//	    lowerIsBetter: true
//	    conditions:
//	      start: 0xH1=1
//	      cancel: 0=1
//	      submit: 0xH1=2
//	      value: M:0xX10
//
// Conditions are written as a code string, a list of conditions (each a
// string, a 9-element array or a mapping) or a core/alt1/alt2... mapping.
// Leaderboard conditions also accept the STA:...::CAN:...::SUB:...::VAL:...
// string.
package definition
