// Package reverb provides block-based reverb processors.
//
// FDN is a four-channel feedback delay network. Each block of mono input is
// fanned out to four channels, the previous block's feedback is mixed in
// through a fixed sign matrix scaled by the feedback gain, every channel is
// delayed once for the audible output (summed) and once more, by a shorter
// compensation line, to produce the feedback consumed by the next block.
//
// The compensation line is sized at construction as delay-frameSize so the
// feedback round trip (compensation delay plus one block) equals the full
// channel delay. UpdateFrameSize does not re-derive it: hosts that change the
// block size substantially should construct a new FDN.
package reverb
