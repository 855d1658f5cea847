package audio
import (
	"math"
)

/*
 * single coefficient of the orthonormal DCT-II.
 * the whole transform is never needed: reading a bit looks at one
 * coefficient, and writing one moves the frame along that coefficient's
 * basis vector only, which is exactly what a full forward transform,
 * coefficient replacement and orthonormal inverse would produce.
 */
type dctBasis struct {
	k	int
	vector	[]float64
}

func newDCTBasis( n, k int ) *dctBasis {
	w := math.Sqrt( 2.0 / float64(n) )
	if k == 0 {
		w = math.Sqrt( 1.0 / float64(n) )
	}
	vector := make( []float64, n )
	for i := range vector {
		vector[i] = w * math.Cos( math.Pi*float64(2*i+1)*float64(k)/float64(2*n) )
	}
	return &dctBasis{ k, vector }
}

func ( d *dctBasis ) coefficient( frame []float64 ) float64 {
	sum := 0.0
	for i, v := range d.vector {
		sum += frame[i] * v
	}
	return sum
}

// setCoefficient changes frame in place so that its coefficient equals target.
func ( d *dctBasis ) setCoefficient( frame []float64, target float64 ) {
	diff := target - d.coefficient( frame )
	for i, v := range d.vector {
		frame[i] += diff * v
	}
}
