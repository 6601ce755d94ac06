package syncengine

import (
	"io"

	"github.com/blockcopy/blockcopy/internal/logging"
	"github.com/blockcopy/blockcopy/internal/wire"
)

// SaveOptions configures one save run.
type SaveOptions struct {
	Logger logging.ILogger
}

// RunSave applies a data stream to dest. It is intentionally nearly
// trivial, per §2's sizing note that the depth of this system lives in
// checksum and retrieve: there is no parallelism to coordinate here, just a
// single sequential read-apply loop (§4.2's save contract).
func RunSave(dest io.WriterAt, dataIn io.Reader, opts SaveOptions) error {
	dr := wire.NewDataStreamReader(dataIn)

	for {
		rec, err := dr.ReadRecord()
		if err != nil {
			if err == wire.ErrIncompleteStream {
				return logging.NewIncompleteReadError("data stream closed before a terminating done record")
			}
			if ute, ok := err.(*wire.UnknownTagError); ok {
				return logging.NewUnknownCommandError(ute.Tag)
			}
			return err
		}

		switch rec.Kind {
		case wire.DataRecordDone:
			return nil
		case wire.DataRecordEntry:
			if _, werr := dest.WriteAt(rec.Entry.Payload, int64(rec.Entry.Pos)); werr != nil {
				return logging.WrapIO("write", "destination object", werr)
			}
			opts.Logger.Log(logging.ELogLevel.Debug(), "save: wrote one data record")
		}
	}
}
