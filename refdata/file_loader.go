package refdata

// FileLoader loads both reference datasets from local files. It is the
// production ReferenceLoader; tests substitute their own loader.
type FileLoader struct {
	SymptomPath  string
	RegistryPath string
}

// NewFileLoader creates a loader over the given file paths.
func NewFileLoader(symptomPath, registryPath string) *FileLoader {
	return &FileLoader{
		SymptomPath:  symptomPath,
		RegistryPath: registryPath,
	}
}

// Load reads and validates both datasets, all-or-nothing.
func (l *FileLoader) Load() (*SymptomTable, *DrugRegistry, error) {
	return Load(l.SymptomPath, l.RegistryPath)
}
