// Test Zwrap
package zwrap_test

import (
	"io"
	"os"
	"testing"

	"github.com/andrew-torda/rnaannot/pkg/zwrap"
)

// The first is "andrewsayshello" compressed.
var gztests = []struct {
	data    []byte
	gzipped bool
}{
	{[]byte{
		0x1f, 0x8b, 0x08, 0x00, 0xb6, 0xf1, 0xa0, 0x5b, 0x00, 0x03,
		0x4b, 0xcc, 0x4b, 0x29, 0x4a, 0x2d, 0x2f, 0x4e, 0xac, 0x2c,
		0xce, 0x48, 0xcd, 0xc9, 0xc9, 0x07, 0x00, 0x44, 0xa8, 0x66,
		0x89, 0x0f, 0x00, 0x00, 0x00},
		true,
	},
	{[]byte("andrewsayshello\n"), false},
	{[]byte{0x1f}, false},
}

// writeToTmp writes bytes to a temporary file and returns it rewound
func writeToTmp(t *testing.T, data []byte) *os.File {
	t.Helper()
	fp, err := os.CreateTemp("", "_del_me_testing")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Remove(fp.Name()) })
	if _, err := fp.Write(data); err != nil {
		t.Fatal(err)
	}
	if _, err := fp.Seek(0, io.SeekStart); err != nil {
		t.Fatal(err)
	}
	return fp
}

func TestWrapMaybe(t *testing.T) {
	for i, x := range gztests {
		fp := writeToTmp(t, x.data)
		if gz, err := zwrap.Sniff(fp); err != nil || gz != x.gzipped {
			t.Errorf("test %d sniffed %v %v", i, gz, err)
		}
		rdr, err := zwrap.WrapMaybe(fp)
		if err != nil {
			t.Fatal(err)
		}
		if rdr.Gzipped() != x.gzipped {
			t.Error("test", i, "gzipped wrong")
		}
		b, err := io.ReadAll(rdr)
		if err != nil {
			t.Fatal(err)
		}
		if x.gzipped && string(b) != "andrewsayshello" {
			t.Errorf("test %d got %q", i, b)
		}
		if !x.gzipped && string(b) != string(x.data) {
			t.Errorf("test %d plain data changed %q", i, b)
		}
		if err := rdr.Close(); err != nil {
			t.Error(err)
		}
	}
}

func TestWrapBad(t *testing.T) {
	fp := writeToTmp(t, []byte("not compressed at all"))
	defer fp.Close()
	if _, err := zwrap.Wrap(fp); err == nil {
		t.Error("plain text should not open as gzip")
	}
}
