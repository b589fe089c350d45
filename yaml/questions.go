// Package yaml loads question files.
//
// A question file is either a plain list of questions or a mapping with a
// questions list and an optional start URL:
//
//	url: https://example.com
//	questions:
//	  - What is the support email address?
//	  - Do they ship to Canada?
package yaml

import (
	"io"
	"os"

	"github.com/fwojciec/siteask"
	"gopkg.in/yaml.v3"
)

// QuestionFile is the decoded content of a question file.
type QuestionFile struct {
	URL       string   `yaml:"url"`
	Questions []string `yaml:"questions"`
}

// QuestionSet numbers the file's questions.
func (f *QuestionFile) QuestionSet() siteask.QuestionSet {
	return siteask.NewQuestionSet(f.Questions)
}

// Decode reads a question file from r.
func Decode(r io.Reader) (*QuestionFile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var list []string
	if err := yaml.Unmarshal(data, &list); err == nil {
		return validate(&QuestionFile{Questions: list})
	}

	var file QuestionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, siteask.Errorf(siteask.EINVALID, "malformed question file: %v", err)
	}
	return validate(&file)
}

// Load reads the question file at path.
func Load(path string) (*QuestionFile, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, siteask.Errorf(siteask.ENOTFOUND, "question file %s not found", path)
		}
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

func validate(f *QuestionFile) (*QuestionFile, error) {
	if err := f.QuestionSet().Validate(); err != nil {
		return nil, err
	}
	return f, nil
}
