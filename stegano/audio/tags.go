package audio
import (
	id3 "github.com/bogem/id3v2/v2"
)

// CopyTags puts the ID3v2 frames of src onto dst, replacing frames with the
// same id, so a re-encoded file keeps the title, artist and artwork of its cover.
func CopyTags( src, dst string ) error {
	srcTag, err := id3.Open( src, id3.Options{ Parse: true } )
	if err != nil {
		return err
	}
	defer srcTag.Close()
	if srcTag.HasFrames() == false {
		return nil
	}

	dstTag, err := id3.Open( dst, id3.Options{ Parse: true } )
	if err != nil {
		return err
	}
	defer dstTag.Close()

	for id, frames := range srcTag.AllFrames() {
		dstTag.DeleteFrames( id )
		for _, f := range frames {
			dstTag.AddFrame( id, f )
		}
	}
	dstTag.SetVersion( srcTag.Version() )
	return dstTag.Save()
}
