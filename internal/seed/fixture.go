package seed

import (
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const dateLayout = "02-01-2006 15:04"

type Date struct {
	time.Time
}

func (t *Date) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var buf string
	err := unmarshal(&buf)
	if err != nil {
		return err
	}

	tt, err := time.Parse(dateLayout, strings.TrimSpace(buf))
	if err != nil {
		return err
	}
	t.Time = tt
	return nil
}

func (t Date) MarshalYAML() (interface{}, error) {
	return t.Time.Format(dateLayout), nil
}

type Grade struct {
	Subject string
	Grade   string
	Date    Date
}

type Student struct {
	First  string
	Last   string
	Email  string
	Grades []Grade
}

type Subject struct {
	Code    string
	Name    string
	Teacher string
}

type Fixture struct {
	Subjects []Subject
	Students []Student
}

func Parse(data []byte) (*Fixture, error) {
	fixture := &Fixture{}
	if err := yaml.Unmarshal(data, fixture); err != nil {
		return nil, errors.Wrap(err, "Failed to unmarshal fixture")
	}
	return fixture, nil
}

// Read loads a fixture from a local path or an http(s) url.
func Read(location string) (*Fixture, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return fetch(location)
	}

	data, err := os.ReadFile(location)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to read fixture")
	}
	return Parse(data)
}

func fetch(url string) (*Fixture, error) {
	resp, err := resty.New().SetTimeout(10 * time.Second).R().Get(url)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to fetch fixture")
	}
	if resp.IsError() {
		return nil, errors.Errorf("Failed to fetch fixture: %s", resp.Status())
	}
	return Parse(resp.Body())
}
