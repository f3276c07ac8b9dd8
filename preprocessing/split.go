// Package preprocessing は補間の前処理ヘルパーを提供します。
// コア補間器は既知点集合を変更しないため、train/test分割は呼び出し側の
// 責務であり、このパッケージはその呼び出し側ヘルパーです。
package preprocessing

import (
	"math"
	"math/rand"

	"github.com/YuminosukeSato/gokrige/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// TrainTestSplit は既知点集合を学習用とテスト用に分割する。
// 明示的なシードによる決定的なシャッフルを行うため、同じ入力と
// シードからは常に同じ分割が得られる。
//
// パラメータ:
//   - coords: n×2 の座標行列
//   - values: 長さnの値ベクトル
//   - testFraction: テストに回す割合（0 < f < 1）
//   - seed: シャッフルのシード
func TrainTestSplit(coords mat.Matrix, values mat.Vector, testFraction float64, seed int64) (trainX *mat.Dense, trainY *mat.VecDense, testX *mat.Dense, testY *mat.VecDense, err error) {
	n, c := coords.Dims()
	if n < 2 {
		return nil, nil, nil, nil, errors.NewInsufficientDataError("preprocessing.TrainTestSplit", 2, n)
	}
	if c != 2 {
		return nil, nil, nil, nil, errors.NewDimensionError("preprocessing.TrainTestSplit", 2, c, 1)
	}
	if values.Len() != n {
		return nil, nil, nil, nil, errors.NewDimensionError("preprocessing.TrainTestSplit", n, values.Len(), 0)
	}
	if testFraction <= 0 || testFraction >= 1 {
		return nil, nil, nil, nil, errors.NewValueError("preprocessing.TrainTestSplit", "test fraction must be in (0, 1)")
	}

	testCount := int(math.Round(float64(n) * testFraction))
	if testCount < 1 {
		testCount = 1
	}
	if testCount > n-1 {
		testCount = n - 1
	}
	trainCount := n - testCount

	perm := rand.New(rand.NewSource(seed)).Perm(n)

	trainX = mat.NewDense(trainCount, 2, nil)
	trainY = mat.NewVecDense(trainCount, nil)
	testX = mat.NewDense(testCount, 2, nil)
	testY = mat.NewVecDense(testCount, nil)

	for i, idx := range perm {
		if i < trainCount {
			trainX.Set(i, 0, coords.At(idx, 0))
			trainX.Set(i, 1, coords.At(idx, 1))
			trainY.SetVec(i, values.AtVec(idx))
		} else {
			j := i - trainCount
			testX.Set(j, 0, coords.At(idx, 0))
			testX.Set(j, 1, coords.At(idx, 1))
			testY.SetVec(j, values.AtVec(idx))
		}
	}
	return trainX, trainY, testX, testY, nil
}
