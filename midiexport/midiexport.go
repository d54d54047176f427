// Package midiexport renders a singable.Singable timeline to a
// Standard MIDI File, grounded on the teacher's midi.GenerateFromTrack:
// one smf.Track per channel, events collected with absolute ticks,
// sorted, then re-emitted as the delta times smf.Track.Add expects.
package midiexport

import (
	"fmt"
	"os"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"reharmonia/singable"
)

// TicksPerQuarter is the SMF resolution, matching the teacher's
// 480-tick quarter note.
const TicksPerQuarter = 480

// Options configures the rendered file's tempo and which GM program
// number plays each channel present in the Singable.
type Options struct {
	Tempo    int
	Programs map[int]uint8
}

func (o Options) withDefaults() Options {
	if o.Tempo == 0 {
		o.Tempo = 120
	}
	if o.Programs == nil {
		o.Programs = map[int]uint8{}
	}
	return o
}

type midiEvent struct {
	tick    uint32
	message midi.Message
}

func toTick(beats float64) uint32 {
	return uint32(beats*TicksPerQuarter + 0.5)
}

func toVelocity(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 127
	}
	return uint8(v * 127)
}

// Write renders song to an SMF at path: a tempo-only track 0, then one
// track per distinct channel present in song's keys, in ascending
// channel order.
func Write(path string, song singable.Singable, opts Options) error {
	opts = opts.withDefaults()

	keys := singable.Materialize(song)

	byChannel := map[int][]singable.Key{}
	for _, k := range keys {
		byChannel[k.Channel] = append(byChannel[k.Channel], k)
	}
	channels := make([]int, 0, len(byChannel))
	for c := range byChannel {
		channels = append(channels, c)
	}
	sort.Ints(channels)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(TicksPerQuarter)

	var track0 smf.Track
	track0.Add(0, smf.MetaTempo(float64(opts.Tempo)))
	track0.Close(0)
	s.Add(track0)

	noteCount := 0
	for _, ch := range channels {
		var track smf.Track
		track.Add(0, midi.ProgramChange(uint8(ch), opts.Programs[ch]))

		var events []midiEvent
		for _, k := range byChannel[ch] {
			if k.Note == nil {
				continue
			}
			start := toTick(k.Start)
			end := toTick(k.Start + k.Length)
			velocity := toVelocity(k.Velocity)
			events = append(events, midiEvent{start, midi.NoteOn(uint8(ch), uint8(k.Note.MIDI()), velocity)})
			events = append(events, midiEvent{end, midi.NoteOff(uint8(ch), uint8(k.Note.MIDI()))})
			noteCount++
		}
		sort.SliceStable(events, func(i, j int) bool { return events[i].tick < events[j].tick })

		prev := uint32(0)
		for _, evt := range events {
			track.Add(evt.tick-prev, evt.message)
			prev = evt.tick
		}
		track.Close(0)
		s.Add(track)
	}

	fmt.Printf("[midi] wrote %d notes across %d channels\n", noteCount, len(channels))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("midiexport: %w", err)
	}
	defer f.Close()

	if _, err := s.WriteTo(f); err != nil {
		return fmt.Errorf("midiexport: %w", err)
	}
	return nil
}
