// Package jsonfile implements store.Persister on top of a single JSON file.
//
// The file maps each set name to its flashcards and progress:
//
//	{
//	  "Engine101": {
//	    "flashcards": {"piston": "part that moves up and down"},
//	    "progress": {"percentage": 100, "incorrect_flashcards": []}
//	  }
//	}
//
// The whole file is rewritten on every save. A missing file loads as an empty
// collection; a file that cannot be decoded is reported as ErrCorruptStore.
package jsonfile
