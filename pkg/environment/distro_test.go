package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOSRelease(t *testing.T) {
	data := []byte(`# comment
NAME="Ubuntu"
ID=ubuntu
ID_LIKE=debian
PRETTY_NAME='Ubuntu 22.04 LTS'
garbage line
`)
	fields := ParseOSRelease(data)

	assert.Equal(t, "Ubuntu", fields["NAME"])
	assert.Equal(t, "ubuntu", fields["ID"])
	assert.Equal(t, "debian", fields["ID_LIKE"])
	assert.Equal(t, "Ubuntu 22.04 LTS", fields["PRETTY_NAME"])
	assert.NotContains(t, fields, "garbage line")
}

func TestDistroFromOSRelease(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]string
		want   Distro
	}{
		{"ubuntu by id", map[string]string{"ID": "ubuntu"}, DistroDebian},
		{"rocky by id", map[string]string{"ID": "rocky"}, DistroFedora},
		{"manjaro", map[string]string{"ID": "manjaro"}, DistroArch},
		{"alpine", map[string]string{"ID": "alpine"}, DistroAlpine},
		{"tumbleweed", map[string]string{"ID": "opensuse-tumbleweed"}, DistroSuse},
		{"unknown id with like", map[string]string{"ID": "zorin", "ID_LIKE": "ubuntu debian"}, DistroDebian},
		{"like list second token", map[string]string{"ID": "custom", "ID_LIKE": "foo rhel"}, DistroFedora},
		{"upper case id", map[string]string{"ID": "Fedora"}, DistroFedora},
		{"nothing known", map[string]string{"ID": "gentoo"}, DistroUnknown},
		{"empty", map[string]string{}, DistroUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DistroFromOSRelease(tt.fields))
		})
	}
}
