package collections

import "github.com/JonMunkholm/sheetsync/internal/core"

// Student sheets have no fixed layout: the header row of each read decides
// the columns, and rows are compared in full when checking for stale handles.
func registerStudents() {
	core.Register(core.CollectionDefinition{
		Info: core.CollectionInfo{
			Key:   core.StudentsKey,
			Group: "Students",
			Label: "Students",
		},
		Importable: true,
		Messages: core.Messages{
			UpdateOK:   "Student updated!",
			UpdateFail: "Failed to update student.",
			ImportOK:   "Students imported!",
			ImportFail: "Failed to import students.",
		},
	})
}
