// Package extract unpacks tool distributions below an install root.
//
// Two container formats are read: gzip-compressed tar streams and 7z
// archives. A 7z archive may also be embedded in a self-extracting Windows
// executable, recognized by the "7z.exe" suffix in its name. Such a stub is
// scanned for the 7z signature and its payload is extracted in turn, both
// when the stub is the input and when it turns up as an entry of another
// archive.
//
// Every entry name is checked with Resolve before anything is written, and
// again against symlinks already present under the root. A rejected name
// aborts the container it came from.
//
// Basic usage:
//
//	x := extract.NewExtractor().WithLogger(myLogger)
//	out := x.ExtractTarGz("PortableGit.tar.gz", extract.Target{
//	    BaseDir: "/opt/tools",
//	    Product: "PortableGit",
//	})
//	if out.Status == extract.StatusAborted {
//	    return out.Err
//	}
//
// Entries that the 7z reader cannot decode do not stop extraction. They are
// listed in Outcome.Failures and the status becomes StatusPartiallyFailed.
package extract
