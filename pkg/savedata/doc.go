// Package savedata declares the record tree of the two file kinds: the
// Save file holding a playthrough and the System file holding profile-wide
// unlocks and settings.
//
// Sizes and offsets here are per-game constants. The decoding rules live in
// package layout; this package only says where things are.
//
//	Save (0x10000 bytes)
//	  0x0000  SaveHeader      magic "SAVE", version
//	  0x0040  Character x 8   4444 bytes each
//	  0x8B20  Party           9360 bytes
//	  0xAFB0  Inventory
//	  0xC100  Progress        event, quest, treasure, bestiary, affinity flags
//
//	System (0x1000 bytes)
//	  0x0000  SystemHeader    magic "SYST", version
//	  0x0010  Settings
//	  0x0040  achievement and music flags
//	  0x0080  gallery unlock order
package savedata
