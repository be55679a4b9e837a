package oracle

import (
	"fmt"
	"os"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
	"gonum.org/v1/gonum/mat"
)

var ortInitOnce sync.Once
var ortInitErr error

// ORT environment initialization is process-global.
func initRuntime() error {
	ortInitOnce.Do(func() {
		if path := os.Getenv("ORT_SHARED_LIBRARY_PATH"); path != "" {
			ort.SetSharedLibraryPath(path)
		}
		ortInitErr = ort.InitializeEnvironment()
	})
	return ortInitErr
}

// OnnxOracle serves dynamics and prediction from two exported ONNX graphs.
// The dynamics graph takes "state" [N,d] and "action" [N,1] and yields
// "next_state" [N,d] and "reward" [N,1]. The prediction graph takes "state"
// [N,d] and yields "policy" [N,numActions] and "value" [N,1]. Batches of any
// N run through the same sessions.
type OnnxOracle struct {
	dynamics      *ort.DynamicAdvancedSession
	prediction    *ort.DynamicAdvancedSession
	embeddingSize int
	numActions    int
}

func NewOnnxOracle(dynamicsPath, predictionPath string, embeddingSize, numActions int) (*OnnxOracle, error) {
	if embeddingSize <= 0 {
		return nil, fmt.Errorf("embedding size must be positive, got %d", embeddingSize)
	}
	if numActions <= 0 {
		return nil, fmt.Errorf("action count must be positive, got %d", numActions)
	}
	if err := initRuntime(); err != nil {
		return nil, fmt.Errorf("failed to init onnxruntime: %w", err)
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		return nil, err
	}
	defer options.Destroy()

	dynamics, err := ort.NewDynamicAdvancedSession(dynamicsPath,
		[]string{"state", "action"}, []string{"next_state", "reward"}, options)
	if err != nil {
		return nil, fmt.Errorf("failed to create dynamics session: %w", err)
	}
	prediction, err := ort.NewDynamicAdvancedSession(predictionPath,
		[]string{"state"}, []string{"policy", "value"}, options)
	if err != nil {
		dynamics.Destroy()
		return nil, fmt.Errorf("failed to create prediction session: %w", err)
	}

	return &OnnxOracle{
		dynamics:      dynamics,
		prediction:    prediction,
		embeddingSize: embeddingSize,
		numActions:    numActions,
	}, nil
}

func (o *OnnxOracle) Close() error {
	err := o.dynamics.Destroy()
	if predErr := o.prediction.Destroy(); err == nil {
		err = predErr
	}
	return err
}

func (o *OnnxOracle) Step(states *mat.Dense, actions []int) (*mat.Dense, []float64, error) {
	n, d := states.Dims()
	if d != o.embeddingSize {
		return nil, nil, fmt.Errorf("state batch has embedding size %d, want %d", d, o.embeddingSize)
	}
	if len(actions) != n {
		return nil, nil, fmt.Errorf("got %d actions for %d walkers", len(actions), n)
	}

	stateTensor, err := ort.NewTensor(ort.NewShape(int64(n), int64(d)), denseToFloat32(states))
	if err != nil {
		return nil, nil, err
	}
	defer stateTensor.Destroy()

	actionData := make([]float32, n)
	for i, action := range actions {
		actionData[i] = float32(action)
	}
	actionTensor, err := ort.NewTensor(ort.NewShape(int64(n), 1), actionData)
	if err != nil {
		return nil, nil, err
	}
	defer actionTensor.Destroy()

	nextTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(int64(n), int64(d)))
	if err != nil {
		return nil, nil, err
	}
	defer nextTensor.Destroy()

	rewardTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(int64(n), 1))
	if err != nil {
		return nil, nil, err
	}
	defer rewardTensor.Destroy()

	err = o.dynamics.Run(
		[]ort.Value{stateTensor, actionTensor},
		[]ort.Value{nextTensor, rewardTensor},
	)
	if err != nil {
		return nil, nil, fmt.Errorf("dynamics inference: %w", err)
	}

	next := float32ToDense(n, d, nextTensor.GetData())
	rewards := float32ToFloat64(rewardTensor.GetData())
	return next, rewards, nil
}

func (o *OnnxOracle) Predict(states *mat.Dense) (*mat.Dense, []float64, error) {
	n, d := states.Dims()
	if d != o.embeddingSize {
		return nil, nil, fmt.Errorf("state batch has embedding size %d, want %d", d, o.embeddingSize)
	}

	stateTensor, err := ort.NewTensor(ort.NewShape(int64(n), int64(d)), denseToFloat32(states))
	if err != nil {
		return nil, nil, err
	}
	defer stateTensor.Destroy()

	policyTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(int64(n), int64(o.numActions)))
	if err != nil {
		return nil, nil, err
	}
	defer policyTensor.Destroy()

	valueTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(int64(n), 1))
	if err != nil {
		return nil, nil, err
	}
	defer valueTensor.Destroy()

	err = o.prediction.Run([]ort.Value{stateTensor}, []ort.Value{policyTensor, valueTensor})
	if err != nil {
		return nil, nil, fmt.Errorf("prediction inference: %w", err)
	}

	policy := float32ToDense(n, o.numActions, policyTensor.GetData())
	values := float32ToFloat64(valueTensor.GetData())
	return policy, values, nil
}

func denseToFloat32(m *mat.Dense) []float32 {
	raw := m.RawMatrix()
	out := make([]float32, 0, raw.Rows*raw.Cols)
	for i := 0; i < raw.Rows; i++ {
		row := raw.Data[i*raw.Stride : i*raw.Stride+raw.Cols]
		for _, v := range row {
			out = append(out, float32(v))
		}
	}
	return out
}

func float32ToDense(rows, cols int, data []float32) *mat.Dense {
	out := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out.Set(i, j, float64(data[i*cols+j]))
		}
	}
	return out
}

func float32ToFloat64(data []float32) []float64 {
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = float64(v)
	}
	return out
}
