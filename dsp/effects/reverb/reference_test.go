package reverb

// referenceFDN is a deliberately naive rendition of the network: slice
// queues for delays, fresh allocations per block and the textbook
// accumulation order. FDN must match it bit for bit.
type referenceFDN struct {
	direct   [FDNChannels]*queueDelay
	comp     [FDNChannels]*queueDelay
	feedback [FDNChannels][]float64
}

type queueDelay struct {
	size   int
	queue  []float64
	steady bool
}

func (q *queueDelay) process(in []float64) []float64 {
	out := make([]float64, len(in))
	for i, x := range in {
		if q.steady || len(q.queue) == q.size {
			q.steady = true
			out[i] = q.queue[0]
			q.queue = append(q.queue[1:], x)
			continue
		}
		q.queue = append(q.queue, x)
	}
	return out
}

func newReferenceFDN(frameSize int) *referenceFDN {
	r := &referenceFDN{}
	for ch := range FDNChannels {
		d := fdnDelaySamples[ch]
		r.direct[ch] = &queueDelay{size: d}
		r.comp[ch] = &queueDelay{size: max(d-frameSize, 1)}
		r.feedback[ch] = make([]float64, frameSize)
	}
	return r
}

func (r *referenceFDN) process(in []float64) []float64 {
	out := make([]float64, len(in))

	var local [FDNChannels][]float64
	for ch := range FDNChannels {
		local[ch] = append([]float64{}, in...)
	}

	for o := range FDNChannels {
		for i := range FDNChannels {
			for t := range local[o] {
				// The explicit conversion forbids fusing into a multiply-add.
				local[o][t] += float64(r.feedback[i][t] * fdnMatrix[o][i] * defaultFDNFeedbackGain)
			}
		}
	}

	for ch := range FDNChannels {
		tout := r.direct[ch].process(local[ch])
		for t := range out {
			out[t] += tout[t]
		}
	}

	for ch := range FDNChannels {
		r.feedback[ch] = r.comp[ch].process(local[ch])
	}

	return out
}
