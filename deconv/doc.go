/*
Package deconv recovers a sharp image from a blurred observation and a
known blur kernel by solving a regularized inverse problem in the
frequency domain.

Two estimators are provided. Cho is a single-pass closed-form solve:

	sharp, err := deconv.Cho(blurred, kernel, nil)

Shan is a slower alternating minimization with a sparse prior on image
gradients:

	sharp, err := deconv.Shan(blurred, kernel, nil)

Both operate on an enlarged canvas whose margins are synthesized to
suppress wrap-around ringing, and crop the result back to the input
extent. Apply selects an estimator by name and exchanges images with
an imstack.Stack:

	err := deconv.Apply(stack, "cho", deconv.DefaultOptions())

Kernels must be single-channel with odd width and height.
*/
package deconv
