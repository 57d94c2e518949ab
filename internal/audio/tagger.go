package audio

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/bogem/id3v2"
	"github.com/dhowden/tag"

	ioutils "harmonize/internal/io"
	"harmonize/internal/model"
)

// DefaultMaxArtSize is the largest dimension of embedded cover art, in
// pixels. Larger pictures are downscaled before embedding.
const DefaultMaxArtSize = 1000

// vorbis comment keys the ID3 frame mapping accounts for. Anything else is
// reported through the warn callback and skipped.
var handledKeys = map[string]bool{
	"title":                  true,
	"artist":                 true,
	"album":                  true,
	"albumartist":            true,
	"album artist":           true,
	"genre":                  true,
	"date":                   true,
	"year":                   true,
	"tracknumber":            true,
	"tracktotal":             true,
	"totaltracks":            true,
	"discnumber":             true,
	"disctotal":              true,
	"totaldiscs":             true,
	"composer":               true,
	"lyrics":                 true,
	"comment":                true,
	"description":            true,
	"metadata_block_picture": true,
	"coverart":               true,
	"coverartmime":           true,
}

func readMetadata(source string) (tag.Metadata, error) {
	f, err := os.Open(source)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("read tags from %s: %w", source, err)
	}
	return m, nil
}

// MP3Tagger copies tags from a lossless source onto a finished MP3 file as
// ID3v2 frames, including embedded cover art.
type MP3Tagger struct {
	images     *ioutils.ImageService
	maxArtSize int
}

// NewMP3Tagger creates an MP3Tagger with the default artwork size limit.
func NewMP3Tagger() *MP3Tagger {
	return &MP3Tagger{
		images:     ioutils.NewImageService(),
		maxArtSize: DefaultMaxArtSize,
	}
}

// EncodeArgs is a no-op for MP3: tags are written after encoding.
func (t *MP3Tagger) EncodeArgs(source string, warn func(string)) ([]string, error) {
	return nil, nil
}

// CopyTags reads the source's tags and writes them to dest.
func (t *MP3Tagger) CopyTags(source, dest string, warn func(string)) error {
	m, err := readMetadata(source)
	if err != nil {
		return err
	}

	id3, err := id3v2.Open(dest, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("open %s for tagging: %w", dest, err)
	}
	defer id3.Close()

	t.applyFrames(id3, m, warn)

	if err := id3.Save(); err != nil {
		return fmt.Errorf("save tags to %s: %w", dest, err)
	}
	return nil
}

func (t *MP3Tagger) applyFrames(id3 *id3v2.Tag, m tag.Metadata, warn func(string)) {
	if v := m.Title(); v != "" {
		id3.SetTitle(v)
	}
	if v := m.Artist(); v != "" {
		id3.SetArtist(v)
	}
	if v := m.Album(); v != "" {
		id3.SetAlbum(v)
	}
	if v := m.Genre(); v != "" {
		id3.SetGenre(v)
	}
	if v := m.AlbumArtist(); v != "" {
		id3.AddTextFrame("TPE2", id3v2.EncodingUTF8, v)
	}
	if v := m.Composer(); v != "" {
		id3.AddTextFrame("TCOM", id3v2.EncodingUTF8, v)
	}
	if y := m.Year(); y > 0 {
		id3.AddTextFrame("TDRC", id3v2.EncodingUTF8, strconv.Itoa(y))
	}
	if n, total := m.Track(); n > 0 {
		id3.AddTextFrame("TRCK", id3v2.EncodingUTF8, indexOf(n, total))
	}
	if n, total := m.Disc(); n > 0 {
		id3.AddTextFrame("TPOS", id3v2.EncodingUTF8, indexOf(n, total))
	}
	if v := m.Lyrics(); v != "" {
		id3.AddUnsynchronisedLyricsFrame(id3v2.UnsynchronisedLyricsFrame{
			Encoding: id3v2.EncodingUTF8,
			Language: "und",
			Lyrics:   v,
		})
	}
	if v := m.Comment(); v != "" {
		id3.AddCommentFrame(id3v2.CommentFrame{
			Encoding: id3v2.EncodingUTF8,
			Language: "und",
			Text:     v,
		})
	}

	if pic := m.Picture(); pic != nil && len(pic.Data) > 0 {
		t.embedArtwork(id3, pic, warn)
	}

	if warn != nil {
		for _, key := range unmappedKeys(m.Raw()) {
			warn(fmt.Sprintf("cannot map tag %q", key))
		}
	}
}

func (t *MP3Tagger) embedArtwork(id3 *id3v2.Tag, pic *tag.Picture, warn func(string)) {
	data := pic.Data
	mime := pic.MIMEType
	if mime == "" {
		mime = "image/jpeg"
	}

	if t.maxArtSize > 0 {
		w, h, err := t.images.Dimensions(data)
		if err == nil && (w > t.maxArtSize || h > t.maxArtSize) {
			resized, err := t.images.ResizeImage(data, t.maxArtSize, t.maxArtSize)
			if err == nil {
				data = resized
				mime = "image/jpeg"
			} else if warn != nil {
				warn(fmt.Sprintf("cannot resize cover art: %v", err))
			}
		}
	}

	id3.DeleteFrames(id3.CommonID("Attached picture"))
	id3.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    mime,
		PictureType: id3v2.PTFrontCover,
		Description: "Cover",
		Picture:     data,
	})
}

// indexOf formats a track/disc index as "n" or "n/total".
func indexOf(n, total int) string {
	if total > 0 {
		return strconv.Itoa(n) + "/" + strconv.Itoa(total)
	}
	return strconv.Itoa(n)
}

// unmappedKeys returns raw tag keys the frame mapping does not handle,
// sorted for stable reporting. Non-string values (embedded pictures and
// the like) are not reported; they are handled elsewhere or meaningless to
// the destination format.
func unmappedKeys(raw map[string]interface{}) []string {
	var keys []string
	for key, value := range raw {
		if _, ok := value.(string); !ok {
			continue
		}
		if !handledKeys[strings.ToLower(key)] {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// OpusTagger supplies tags to opusenc at encode time. opusenc writes
// vorbis comments into the stream it produces; there is no post-encode tag
// pass for Opus.
type OpusTagger struct{}

// NewOpusTagger creates an OpusTagger.
func NewOpusTagger() *OpusTagger {
	return &OpusTagger{}
}

// EncodeArgs reads the source's tags and returns ordered --comment options
// for opusenc. Embedded pictures are skipped: carrying them would require
// spooling to a separate file, and oversized artwork in an opus stream is
// worse than none.
func (t *OpusTagger) EncodeArgs(source string, warn func(string)) ([]string, error) {
	m, err := readMetadata(source)
	if err != nil {
		return nil, err
	}
	return commentArgs(m.Raw()), nil
}

// CopyTags is a no-op for Opus: tags were written during encoding.
func (t *OpusTagger) CopyTags(source, dest string, warn func(string)) error {
	return nil
}

// commentArgs turns raw vorbis comments into opusenc --comment options,
// sorted by key for deterministic invocations.
func commentArgs(raw map[string]interface{}) []string {
	keys := make([]string, 0, len(raw))
	for key, value := range raw {
		s, ok := value.(string)
		if !ok || s == "" {
			continue
		}
		if strings.EqualFold(key, "metadata_block_picture") {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var args []string
	for _, key := range keys {
		args = append(args, "--comment", strings.ToUpper(key)+"="+raw[key].(string))
	}
	return args
}

// Tagger is the per-codec tag-copy strategy. EncodeArgs runs before the
// encoder starts and may contribute encoder options; CopyTags runs after
// the encoded file exists. Each codec uses exactly one of the two.
type Tagger interface {
	EncodeArgs(source string, warn func(string)) ([]string, error)
	CopyTags(source, dest string, warn func(string)) error
}

// TaggerFor returns the tag-copy strategy for a codec.
func TaggerFor(c model.Codec) (Tagger, error) {
	switch c {
	case model.CodecMP3:
		return NewMP3Tagger(), nil
	case model.CodecOpus:
		return NewOpusTagger(), nil
	default:
		return nil, fmt.Errorf("no tagger for codec %q", c)
	}
}
