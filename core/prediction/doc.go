// Package prediction estimates road deterioration with a weighted k-nearest
// neighbours lookup over a fixed reference dataset.
//
// Similarity compares two observations on six weighted attributes. Predict
// selects the k most similar reference observations, averages their
// deterioration rate and repair flag weighted by similarity, and derives a
// risk score and a remaining lifespan from the result. Both functions are
// pure: the dataset is never modified and concurrent calls need no
// coordination.
package prediction
