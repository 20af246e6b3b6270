package ioinfer

import (
	"bufio"
	"os"
	"strings"
)

// readSceneLabels parses a scene label file in the categories format:
// one "/x/label index" pair per line. The returned slice is indexed by
// class index; the leading "/x/" of each category path is stripped.
func readSceneLabels(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, LabelsError(path, err)
	}
	defer f.Close()

	var res []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		name := strings.Fields(line)[0]
		if len(name) > 3 {
			name = name[3:]
		}
		res = append(res, name)
	}
	if err = sc.Err(); err != nil {
		return nil, LabelsError(path, err)
	}
	return res, nil
}

// readObjectLabels parses an object label file with one class name per
// line, indexed by class id.
func readObjectLabels(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, LabelsError(path, err)
	}

	var res []string
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		res = append(res, strings.TrimSpace(line))
	}
	return res, nil
}
