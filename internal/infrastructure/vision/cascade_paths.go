package vision

import "path/filepath"

// cascadeCandidates перечисляет пути для загрузки каскада в порядке приоритета.
func cascadeCandidates(path string) []string {
	name := filepath.Base(path)
	if path == "" {
		name = "haarcascade_frontalface_default.xml"
	}

	candidates := make([]string, 0, 6)
	if path != "" {
		candidates = append(candidates, path)
	}
	return append(candidates,
		name,
		filepath.Join("haarcascades", name),
		filepath.Join("/usr/local/share/opencv4/haarcascades", name),
		filepath.Join("/usr/share/opencv4/haarcascades", name),
		filepath.Join("/opt/homebrew/share/opencv4/haarcascades", name),
	)
}
