/*
 * traj.go, part of gomqc.
 *
 * Copyright 2021 The gomqc developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package traj reads and writes the compressed surface-hopping trajectory
//format: a plain-text stream of per-step records (running state, random
//draw, energies, hopping probabilities and state populations) behind a
//zstd or gzip compressor selected by the file extension (.gz for gzip,
//anything else for zstd).
package traj

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
)

//Record is the per-step payload: one line in the stream.
type Record struct {
	Step  int
	State int
	Draw  float64
	Ekin  float64
	Epot  float64
	Etot  float64
	Prob  []float64 //per-state hopping probabilities
	Pop   []float64 //density-matrix diagonal
}

//Writer appends Records to a compressed trajectory file.
type Writer struct {
	f         *os.File
	h         io.WriteCloser
	nstates   int
	filename  string
	writeable bool
}

//NewWriter creates the file name and writes the header: the given
//key=value pairs, then a "** nstates" line. Only the first header map, if
//any, is used.
func NewWriter(name string, nstates int, header ...map[string]string) (*Writer, error) {
	return newWriter(name, nstates, false, header...)
}

//NewAppendWriter reopens an existing trajectory for appending, starting a
//new compressed stream after the records already in the file. Both
//compressors decode concatenated streams transparently, so a Reader sees
//one continuous record sequence with the original header. A missing or
//empty file gets the header as in NewWriter.
func NewAppendWriter(name string, nstates int, header ...map[string]string) (*Writer, error) {
	return newWriter(name, nstates, true, header...)
}

func newWriter(name string, nstates int, appendTo bool, header ...map[string]string) (*Writer, error) {
	if nstates < 2 {
		return nil, Error{fmt.Sprintf("%d states, trajectories need at least 2", nstates), name, []string{"NewWriter"}, true}
	}
	W := new(Writer)
	var err error
	withHeader := true
	if appendTo {
		W.f, err = os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	} else {
		W.f, err = os.Create(name)
	}
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"NewWriter"}, true}
	}
	if appendTo {
		st, err := W.f.Stat()
		if err != nil {
			W.f.Close()
			return nil, Error{err.Error(), name, []string{"NewWriter"}, true}
		}
		withHeader = st.Size() == 0
	}
	if strings.HasSuffix(name, ".gz") {
		W.h = gzip.NewWriter(W.f)
	} else {
		W.h, err = zstd.NewWriter(W.f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			W.f.Close()
			return nil, Error{err.Error(), name, []string{"NewWriter"}, true}
		}
	}
	if withHeader {
		if len(header) > 0 && header[0] != nil {
			for k, v := range header[0] {
				fmt.Fprintf(W.h, "%s=%v\n", k, v)
			}
		}
		fmt.Fprintf(W.h, "** %d\n", nstates)
	}
	W.nstates = nstates
	W.filename = name
	W.writeable = true
	return W, nil
}

//NStates returns the number of states records in this file carry.
func (W *Writer) NStates() int { return W.nstates }

//WNext appends one record. The probability and population slices must have
//one entry per state.
func (W *Writer) WNext(r *Record) error {
	if !W.writeable {
		return Error{TrajUnIniWrite, W.filename, []string{"WNext"}, true}
	}
	if r == nil {
		return Error{NilRecord, W.filename, []string{"WNext"}, true}
	}
	if len(r.Prob) != W.nstates || len(r.Pop) != W.nstates {
		return Error{fmt.Sprintf("Record carries %d/%d states, %d expected", len(r.Prob), len(r.Pop), W.nstates), W.filename, []string{"WNext"}, true}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d %d %.10f %.10f %.10f %.10f", r.Step, r.State, r.Draw, r.Ekin, r.Epot, r.Etot)
	for _, p := range r.Prob {
		fmt.Fprintf(&b, " %.10f", p)
	}
	for _, p := range r.Pop {
		fmt.Fprintf(&b, " %.10f", p)
	}
	b.WriteByte('\n')
	if _, err := W.h.Write([]byte(b.String())); err != nil {
		return Error{err.Error(), W.filename, []string{"WNext"}, true}
	}
	return nil
}

//Close flushes and closes the underlying compressor and file. The Writer
//can not be used afterwards.
func (W *Writer) Close() {
	if W == nil || !W.writeable {
		return
	}
	W.h.Close()
	W.f.Close()
	W.writeable = false
}

//Reader reads Records back from a compressed trajectory file.
type Reader struct {
	f        *os.File
	z        io.Closer
	h        *bufio.Reader
	nstates  int
	filename string
	header   map[string]string
	readable bool
}

//stdql adapts *zstd.Decoder, which lacks a Close() error method, to
//io.Closer.
type stdql struct {
	*zstd.Decoder
}

func (s stdql) Close() error {
	s.Decoder.Close()
	return nil
}

//NewReader opens name and parses the header up to and including the
//"** nstates" line.
func NewReader(name string) (*Reader, error) {
	R := new(Reader)
	var err error
	R.f, err = os.Open(name)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"NewReader"}, true}
	}
	var raw io.Reader
	if strings.HasSuffix(name, ".gz") {
		g, err := gzip.NewReader(R.f)
		if err != nil {
			R.f.Close()
			return nil, Error{err.Error(), name, []string{"NewReader"}, true}
		}
		R.z = g
		raw = g
	} else {
		d, err := zstd.NewReader(R.f)
		if err != nil {
			R.f.Close()
			return nil, Error{err.Error(), name, []string{"NewReader"}, true}
		}
		R.z = stdql{d}
		raw = d
	}
	R.h = bufio.NewReader(raw)
	R.filename = name
	R.header = map[string]string{}
	for {
		line, err := R.h.ReadString('\n')
		if err != nil {
			R.Close()
			return nil, Error{WrongFormat + ": header truncated", name, []string{"NewReader"}, true}
		}
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "** ") {
			n, err := strconv.Atoi(strings.TrimSpace(line[3:]))
			if err != nil || n < 2 {
				R.Close()
				return nil, Error{WrongFormat + ": bad state count " + line, name, []string{"NewReader"}, true}
			}
			R.nstates = n
			break
		}
		if k, v, ok := strings.Cut(line, "="); ok {
			R.header[k] = v
		}
	}
	R.readable = true
	return R, nil
}

//Header returns the key=value pairs read from the file header.
func (R *Reader) Header() map[string]string { return R.header }

//NStates returns the number of states the records in this file carry.
func (R *Reader) NStates() int { return R.nstates }

//Next returns the next record, or a LastFrameError-implementing error on
//normal end of file.
func (R *Reader) Next() (*Record, error) {
	if !R.readable {
		return nil, Error{TrajUnIniRead, R.filename, []string{"Next"}, true}
	}
	line, err := R.h.ReadString('\n')
	if err == io.EOF && strings.TrimSpace(line) == "" {
		return nil, lastFrameError{fileName: R.filename}
	}
	if err != nil && err != io.EOF {
		return nil, Error{ReadError + ": " + err.Error(), R.filename, []string{"Next"}, true}
	}
	fields := strings.Fields(line)
	want := 6 + 2*R.nstates
	if len(fields) != want {
		return nil, Error{fmt.Sprintf("%s: %d fields, want %d", WrongFormat, len(fields), want), R.filename, []string{"Next"}, true}
	}
	rec := &Record{Prob: make([]float64, R.nstates), Pop: make([]float64, R.nstates)}
	if rec.Step, err = strconv.Atoi(fields[0]); err != nil {
		return nil, Error{WrongFormat + ": " + err.Error(), R.filename, []string{"Next"}, true}
	}
	if rec.State, err = strconv.Atoi(fields[1]); err != nil {
		return nil, Error{WrongFormat + ": " + err.Error(), R.filename, []string{"Next"}, true}
	}
	fl := make([]float64, 4+2*R.nstates)
	for i := range fl {
		if fl[i], err = strconv.ParseFloat(fields[2+i], 64); err != nil {
			return nil, Error{WrongFormat + ": " + err.Error(), R.filename, []string{"Next"}, true}
		}
	}
	rec.Draw, rec.Ekin, rec.Epot, rec.Etot = fl[0], fl[1], fl[2], fl[3]
	copy(rec.Prob, fl[4:4+R.nstates])
	copy(rec.Pop, fl[4+R.nstates:])
	return rec, nil
}

//Close closes the reader. It can not be used after this call.
func (R *Reader) Close() {
	if R == nil {
		return
	}
	if R.z != nil {
		R.z.Close()
	}
	if R.f != nil {
		R.f.Close()
	}
	R.readable = false
}
