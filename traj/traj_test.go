/*
 * traj_test.go, part of gomqc.
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

package traj

import (
	"math"
	"path/filepath"
	"testing"
)

func sampleRecords() []*Record {
	return []*Record{
		{Step: 0, State: 1, Draw: 0.1234567891, Ekin: 0.02, Epot: 0.01, Etot: 0.03,
			Prob: []float64{0, 0.5}, Pop: []float64{0.3, 0.7}},
		{Step: 1, State: 1, Draw: 0.9, Ekin: 0.019, Epot: 0.011, Etot: 0.03,
			Prob: []float64{0.0000000001, 0.2}, Pop: []float64{0.31, 0.69}},
		{Step: 2, State: 0, Draw: 0.05, Ekin: 0.03, Epot: 0.0, Etot: 0.03,
			Prob: []float64{0, 0}, Pop: []float64{1, 0}},
	}
}

func roundTrip(Te *testing.T, name string) {
	recs := sampleRecords()
	W, err := NewWriter(name, 2, map[string]string{"dt": "0.5"})
	if err != nil {
		Te.Fatal(err)
	}
	if W.NStates() != 2 {
		Te.Errorf("writer carries %d states, want 2", W.NStates())
	}
	for _, r := range recs {
		if err := W.WNext(r); err != nil {
			Te.Fatal(err)
		}
	}
	W.Close()
	if err := W.WNext(recs[0]); err == nil {
		Te.Error("write accepted after Close")
	}

	R, err := NewReader(name)
	if err != nil {
		Te.Fatal(err)
	}
	defer R.Close()
	if R.NStates() != 2 {
		Te.Errorf("reader carries %d states, want 2", R.NStates())
	}
	if R.Header()["dt"] != "0.5" {
		Te.Errorf("header %v, want dt=0.5", R.Header())
	}
	for i := 0; ; i++ {
		got, err := R.Next()
		if err != nil {
			if _, ok := err.(LastFrameError); !ok {
				Te.Fatal(err)
			}
			if i != len(recs) {
				Te.Errorf("read %d records, want %d", i, len(recs))
			}
			break
		}
		want := recs[i]
		if got.Step != want.Step || got.State != want.State {
			Te.Errorf("record %d indices %d/%d, want %d/%d", i, got.Step, got.State, want.Step, want.State)
		}
		//the format carries 10 decimals
		for _, c := range [][2]float64{
			{got.Draw, want.Draw}, {got.Ekin, want.Ekin},
			{got.Epot, want.Epot}, {got.Etot, want.Etot},
			{got.Prob[0], want.Prob[0]}, {got.Prob[1], want.Prob[1]},
			{got.Pop[0], want.Pop[0]}, {got.Pop[1], want.Pop[1]},
		} {
			if math.Abs(c[0]-c[1]) > 1e-9 {
				Te.Errorf("record %d: read %v, want %v", i, c[0], c[1])
			}
		}
	}
}

//TestRoundTripZstd writes and reads back a zstd trajectory.
func TestRoundTripZstd(Te *testing.T) {
	roundTrip(Te, filepath.Join(Te.TempDir(), "traj.mqz"))
}

//TestRoundTripGzip exercises the gzip branch selected by the extension.
func TestRoundTripGzip(Te *testing.T) {
	roundTrip(Te, filepath.Join(Te.TempDir(), "traj.gz"))
}

//appendRoundTrip closes a trajectory mid-run, reopens it for appending and
//checks that a reader sees every record from both sessions behind the
//original header.
func appendRoundTrip(Te *testing.T, name string) {
	recs := sampleRecords()
	W, err := NewWriter(name, 2, map[string]string{"dt": "0.5"})
	if err != nil {
		Te.Fatal(err)
	}
	if err := W.WNext(recs[0]); err != nil {
		Te.Fatal(err)
	}
	W.Close()

	W, err = NewAppendWriter(name, 2, map[string]string{"dt": "0.5"})
	if err != nil {
		Te.Fatal(err)
	}
	for _, r := range recs[1:] {
		if err := W.WNext(r); err != nil {
			Te.Fatal(err)
		}
	}
	W.Close()

	R, err := NewReader(name)
	if err != nil {
		Te.Fatal(err)
	}
	defer R.Close()
	if R.Header()["dt"] != "0.5" {
		Te.Errorf("header %v after the append, want dt=0.5", R.Header())
	}
	for i := 0; ; i++ {
		got, err := R.Next()
		if err != nil {
			if _, ok := err.(LastFrameError); !ok {
				Te.Fatal(err)
			}
			if i != len(recs) {
				Te.Errorf("read %d records across the append, want %d", i, len(recs))
			}
			break
		}
		if got.Step != recs[i].Step || got.State != recs[i].State {
			Te.Errorf("record %d indices %d/%d, want %d/%d", i, got.Step, got.State, recs[i].Step, recs[i].State)
		}
	}
}

//TestAppendZstd checks record continuity across an append on the zstd path.
func TestAppendZstd(Te *testing.T) {
	appendRoundTrip(Te, filepath.Join(Te.TempDir(), "traj.mqz"))
}

//TestAppendGzip checks record continuity across an append on the gzip path.
func TestAppendGzip(Te *testing.T) {
	appendRoundTrip(Te, filepath.Join(Te.TempDir(), "traj.gz"))
}

//TestAppendFresh checks that appending to a file that does not exist yet
//still produces a readable trajectory with a header.
func TestAppendFresh(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "fresh.mqz")
	W, err := NewAppendWriter(name, 2, map[string]string{"dt": "0.5"})
	if err != nil {
		Te.Fatal(err)
	}
	if err := W.WNext(sampleRecords()[0]); err != nil {
		Te.Fatal(err)
	}
	W.Close()
	R, err := NewReader(name)
	if err != nil {
		Te.Fatal(err)
	}
	defer R.Close()
	if R.NStates() != 2 || R.Header()["dt"] != "0.5" {
		Te.Errorf("fresh append produced nstates %d, header %v", R.NStates(), R.Header())
	}
}

//TestWriterValidation checks the shape and state-count guards.
func TestWriterValidation(Te *testing.T) {
	if _, err := NewWriter(filepath.Join(Te.TempDir(), "t.mqz"), 1); err == nil {
		Te.Error("single-state trajectory accepted")
	}
	W, err := NewWriter(filepath.Join(Te.TempDir(), "t2.mqz"), 3)
	if err != nil {
		Te.Fatal(err)
	}
	defer W.Close()
	if err := W.WNext(nil); err == nil {
		Te.Error("nil record accepted")
	}
	bad := &Record{Prob: []float64{0, 0}, Pop: []float64{0, 0}}
	if err := W.WNext(bad); err == nil {
		Te.Error("2-state record accepted by a 3-state writer")
	}
}

//TestReaderErrors checks the missing-file and truncated-header paths.
func TestReaderErrors(Te *testing.T) {
	if _, err := NewReader(filepath.Join(Te.TempDir(), "nonexistent.mqz")); err == nil {
		Te.Error("missing file opened")
	}
	//a trajectory with no records still ends cleanly
	name := filepath.Join(Te.TempDir(), "empty.mqz")
	W, err := NewWriter(name, 2)
	if err != nil {
		Te.Fatal(err)
	}
	W.Close()
	R, err := NewReader(name)
	if err != nil {
		Te.Fatal(err)
	}
	defer R.Close()
	if _, err := R.Next(); err == nil {
		Te.Error("record read from an empty trajectory")
	} else if _, ok := err.(LastFrameError); !ok {
		Te.Errorf("empty trajectory ended with %v, want a last-frame signal", err)
	}
}
